package api

import (
	"html/template"
	"net/http"

	"github.com/rs/zerolog"

	"mannequin/internal/domain/valueobjects"
	"mannequin/internal/i18n"
)

type languageLink struct {
	Code    string
	Name    string
	Current bool
}

type indexPage struct {
	Lang           string
	Dir            string
	Labels         map[string]string
	Accept         string
	State          StateView
	StatusMessages []string
	Languages      []languageLink
}

type PageHandler struct {
	sessions *SessionManager
}

func NewPageHandler(sessions *SessionManager) *PageHandler {
	return &PageHandler{sessions: sessions}
}

func (h *PageHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	ctrl, err := h.sessions.Resolve(w, r)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("session unavailable")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	l := LocalizerFrom(r.Context())
	status, _ := ctrl.Progress()
	page := indexPage{
		Lang:           l.Lang(),
		Dir:            l.Dir(),
		Labels:         labels(l),
		Accept:         valueobjects.AcceptAttribute(),
		State:          newStateView(ctrl.State(), l, status),
		StatusMessages: l.StatusMessages(),
	}
	for _, tag := range i18n.Supported {
		other := i18n.New(tag)
		page.Languages = append(page.Languages, languageLink{
			Code:    other.Lang(),
			Name:    other.Name(),
			Current: other.Lang() == l.Lang(),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, page); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("render index")
	}
}

type slotView struct {
	ID      string
	Title   string
	Accept  string
	Prompt  string
	Formats string
}

func (p indexPage) Slot(id, titleKey string) slotView {
	return slotView{
		ID:      id,
		Title:   p.Labels[titleKey],
		Accept:  p.Accept,
		Prompt:  p.Labels[string(i18n.UploadPrompt)],
		Formats: p.Labels[string(i18n.UploadFormats)],
	}
}

func labels(l *i18n.Localizer) map[string]string {
	keys := []i18n.Key{
		i18n.AppTitle, i18n.AppSubtitle, i18n.ModelTitle, i18n.GarmentTitle,
		i18n.UploadPrompt, i18n.UploadFormats, i18n.SubmitLabel, i18n.SubmitBusy,
		i18n.ResultTitle, i18n.ResultDownload, i18n.ResultStartOver,
	}
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		out[string(k)] = l.T(k)
	}
	return out
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}" dir="{{.Dir}}">
<head>
<meta charset="UTF-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1.0"/>
<title>{{index .Labels "app.title"}}</title>
<script src="https://cdn.tailwindcss.com"></script>
<style>
.loader{border:6px solid #374151;border-top:6px solid #22d3ee;border-radius:50%;width:56px;height:56px;animation:spin 1.2s linear infinite}
@keyframes spin{0%{transform:rotate(0)}100%{transform:rotate(360deg)}}
</style>
</head>
<body class="bg-gray-900 text-white min-h-screen">
<div class="container mx-auto p-4 md:p-8 max-w-5xl">
<nav class="flex justify-end gap-3 text-sm mb-4">
{{range .Languages}}<a href="/?lang={{.Code}}" class="{{if .Current}}text-cyan-300 font-semibold{{else}}text-gray-400 hover:text-white{{end}}">{{.Name}}</a>{{end}}
</nav>
<header class="text-center mb-8">
<h1 class="text-4xl md:text-5xl font-bold bg-clip-text text-transparent bg-gradient-to-r from-cyan-400 to-purple-500">{{index .Labels "app.title"}}</h1>
<p class="text-gray-400 mt-2">{{index .Labels "app.subtitle"}}</p>
</header>

<main class="bg-gray-800/50 rounded-2xl shadow-2xl p-6">
<section id="uploaders">
<div class="flex flex-col md:flex-row gap-4">
{{template "uploader" (.Slot "model" "upload.model.title")}}
{{template "uploader" (.Slot "garment" "upload.garment.title")}}
</div>
<div class="text-center mt-6">
<button id="submit" class="px-8 py-3 rounded-lg font-bold bg-gradient-to-r from-cyan-500 to-purple-600 disabled:opacity-50 disabled:cursor-not-allowed">{{index .Labels "submit.label"}}</button>
</div>
</section>

<section id="result" class="hidden text-center">
<h2 class="text-3xl font-bold mb-4 text-cyan-300">{{index .Labels "result.title"}}</h2>
<img id="result-image" alt="" class="mx-auto max-h-[70vh] rounded-lg shadow-lg"/>
<div class="flex justify-center gap-4 mt-6">
<a id="download" href="/api/result/download" class="px-6 py-2 rounded-lg bg-cyan-600 hover:bg-cyan-700">{{index .Labels "result.download"}}</a>
<button id="start-over" class="px-6 py-2 rounded-lg bg-gray-600 hover:bg-gray-700">{{index .Labels "result.start_over"}}</button>
</div>
</section>

<p id="error" class="hidden mt-6 text-center text-red-400 bg-red-900/30 rounded-lg p-3"></p>
</main>
</div>

<div id="overlay" class="hidden fixed inset-0 bg-black/70 flex flex-col items-center justify-center gap-4">
<div class="loader"></div>
<p id="status" class="text-lg text-cyan-200"></p>
</div>

<script>
const lang = {{.Lang}};
const labels = {{.Labels}};
const statusMessages = {{.StatusMessages}};
let state = {{.State}};

const $ = (id) => document.getElementById(id);

async function call(method, path, body) {
  const res = await fetch(path, {method, body, headers: {"X-Locale": lang}});
  try { state = await res.json(); } catch (e) { return; }
  render();
}

function renderSlot(id, image) {
  const preview = $(id + "-preview");
  const placeholder = $(id + "-placeholder");
  if (image) {
    preview.src = image.data_url;
    preview.classList.remove("hidden");
    placeholder.classList.add("hidden");
  } else {
    preview.removeAttribute("src");
    preview.classList.add("hidden");
    placeholder.classList.remove("hidden");
  }
}

function render() {
  renderSlot("model", state.model_image);
  renderSlot("garment", state.garment_image);

  const showResult = !!state.result_image;
  $("uploaders").classList.toggle("hidden", showResult);
  $("result").classList.toggle("hidden", !showResult);
  if (showResult) { $("result-image").src = state.result_image.data_url; }

  $("error").textContent = state.error || "";
  $("error").classList.toggle("hidden", !state.error);

  $("submit").disabled = !state.can_submit;
  $("submit").textContent = state.loading ? labels["submit.busy"] : labels["submit.label"];

  $("overlay").classList.toggle("hidden", !state.loading);
  $("status").textContent = state.status_message || statusMessages[0];
}

for (const id of ["model", "garment"]) {
  $(id + "-area").addEventListener("click", () => $(id + "-input").click());
  $(id + "-input").addEventListener("change", (ev) => {
    const file = ev.target.files[0];
    if (!file) return;
    const form = new FormData();
    form.append("image", file);
    call("POST", "/api/" + id + "-photo", form);
    ev.target.value = "";
  });
}

$("submit").addEventListener("click", () => {
  state.loading = true;
  state.can_submit = false;
  render();
  call("POST", "/api/tryon");
});
$("start-over").addEventListener("click", () => call("POST", "/api/reset"));

function connectProgress() {
  const scheme = location.protocol === "https:" ? "wss://" : "ws://";
  const ws = new WebSocket(scheme + location.host + "/api/progress?lang=" + encodeURIComponent(lang));
  ws.onmessage = (ev) => {
    const frame = JSON.parse(ev.data);
    if (frame.loading) {
      state.loading = true;
      state.status_message = frame.status_message;
      render();
    }
  };
  ws.onclose = () => setTimeout(connectProgress, 2000);
}

render();
connectProgress();
</script>
</body>
</html>
{{define "uploader"}}
<div class="w-full md:w-1/2 p-2">
<h3 class="text-lg font-semibold text-center text-cyan-300 mb-2">{{.Title}}</h3>
<div id="{{.ID}}-area" class="cursor-pointer bg-gray-800 border-2 border-dashed border-gray-600 rounded-lg h-80 flex items-center justify-center hover:border-cyan-400 hover:bg-gray-700">
<input type="file" id="{{.ID}}-input" class="hidden" accept="{{.Accept}}"/>
<img id="{{.ID}}-preview" alt="{{.Title}}" class="hidden h-full w-full object-contain rounded-lg p-2"/>
<div id="{{.ID}}-placeholder" class="text-center text-gray-400">
<p class="mt-2">{{.Prompt}}</p>
<p class="text-xs text-gray-500">{{.Formats}}</p>
</div>
</div>
</div>
{{end}}`))
