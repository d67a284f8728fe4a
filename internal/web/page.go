package web

// indexPage is the single-page form UI. It talks to the JSON endpoints and
// polls /api/progress twice a second while a download is active.
const indexPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>tubefetch</title>
<style>
  body { font-family: sans-serif; max-width: 720px; margin: 2rem auto; padding: 0 1rem; }
  fieldset { margin-bottom: 1rem; border: 1px solid #ccc; }
  input[type=url] { width: 100%; padding: .4rem; }
  button { padding: .4rem 1rem; }
  #progress { font-family: monospace; white-space: pre; }
  #fault { color: #a00; }
  table { border-collapse: collapse; width: 100%; }
  td, th { text-align: left; padding: .2rem .6rem; border-bottom: 1px solid #eee; }
</style>
</head>
<body>
<h1>tubefetch</h1>
<p>Session {{.Session}}</p>

<fieldset>
  <legend>Video</legend>
  <input type="url" id="url" placeholder="https://www.youtube.com/watch?v=...">
  <p><button onclick="fetchInfo()">Fetch info</button></p>
  <div id="info"></div>
</fieldset>

<fieldset>
  <legend>Download</legend>
  <label>Type
    <select id="kind">
      <option value="video_audio">video + audio</option>
      <option value="video_only">video only</option>
      <option value="audio_only">audio only</option>
    </select>
  </label>
  <label>Quality <select id="quality"></select></label>
  <label>Format <select id="container"></select></label>
  <br>
  <label><input type="checkbox" id="thumbnail"> thumbnail</label>
  <label><input type="checkbox" id="description"> description</label>
  <label><input type="checkbox" id="subtitles"> subtitles</label>
  <p><button onclick="startDownload()">Download</button></p>
  <div id="progress"></div>
  <div id="fault"></div>
</fieldset>

<fieldset>
  <legend>Files</legend>
  <p>
    <button onclick="refreshFiles()">Refresh</button>
    <button onclick="clearFiles()">Clear</button>
  </p>
  <div id="files"></div>
</fieldset>

<script>
const videoQualities = ["best","2160p","1440p","1080p","720p","480p","360p","worst"];
const audioQualities = ["best","320k","256k","192k","128k","96k"];
const videoContainers = ["mp4","mkv","webm","avi"];
const audioContainers = ["mp3","aac","flac","wav","ogg"];

function fill(sel, options) {
  const el = document.getElementById(sel);
  el.innerHTML = "";
  for (const o of options) {
    el.appendChild(new Option(o, o));
  }
}
function syncKind() {
  const audio = document.getElementById("kind").value === "audio_only";
  fill("quality", audio ? audioQualities : videoQualities);
  fill("container", audio ? audioContainers : videoContainers);
}
document.getElementById("kind").addEventListener("change", syncKind);
syncKind();

async function post(path, body) {
  const resp = await fetch(path, {
    method: "POST",
    headers: {"Content-Type": "application/json"},
    body: JSON.stringify(body),
  });
  const data = await resp.json();
  if (!resp.ok) throw data;
  return data;
}

function showFault(f) {
  let text = f.error || "request failed";
  if (f.detail) text += "\n" + f.detail;
  if (f.suggestions) text += "\n" + f.suggestions.map(s => "- " + s).join("\n");
  document.getElementById("fault").innerText = text;
}

async function fetchInfo() {
  document.getElementById("fault").innerText = "";
  document.getElementById("info").innerText = "Fetching...";
  try {
    const data = await post("/api/info", {url: document.getElementById("url").value});
    let html = "<p><b>" + data.title + "</b> by " + data.uploader +
      " (" + data.duration + ")</p>";
    html += formatTable("Video + audio", data.combined);
    html += formatTable("Video only", data.video_only);
    html += formatTable("Audio only", data.audio_only);
    document.getElementById("info").innerHTML = html;
  } catch (f) {
    document.getElementById("info").innerText = "";
    showFault(f);
  }
}

function formatTable(title, rows) {
  if (!rows || rows.length === 0) return "";
  let html = "<h3>" + title + "</h3><table>";
  for (const r of rows) {
    const quality = r.height ? r.height + "p" : (r.abr ? r.abr + "kbps" : "");
    html += "<tr><td>" + r.format_id + "</td><td>" + r.ext + "</td><td>" +
      quality + "</td><td>" + r.filesize + "</td></tr>";
  }
  return html + "</table>";
}

let pollTimer = null;

async function startDownload() {
  document.getElementById("fault").innerText = "";
  try {
    await post("/api/download", {
      url: document.getElementById("url").value,
      kind: document.getElementById("kind").value,
      quality: document.getElementById("quality").value,
      container: document.getElementById("container").value,
      thumbnail: document.getElementById("thumbnail").checked,
      description: document.getElementById("description").checked,
      subtitles: document.getElementById("subtitles").checked,
    });
    if (!pollTimer) pollTimer = setInterval(poll, 500);
  } catch (f) {
    showFault(f);
  }
}

async function poll() {
  const resp = await fetch("/api/progress");
  const state = await resp.json();
  document.getElementById("progress").innerText = state.line;
  if (state.status === "finished" || state.status === "error") {
    clearInterval(pollTimer);
    pollTimer = null;
    refreshFiles();
  }
}

async function refreshFiles() {
  const resp = await fetch("/api/files");
  const data = await resp.json();
  if (data.count === 0) {
    document.getElementById("files").innerText = "No downloads yet.";
    return;
  }
  let html = "<table>";
  for (const f of data.files) {
    html += "<tr><td><a href=\"/files/" + encodeURIComponent(f.name) + "\">" +
      f.name + "</a></td><td>" + f.size + "</td><td>" + f.mod_time + "</td></tr>";
  }
  html += "</table><p>" + data.count + " file(s), " + data.total + "</p>";
  document.getElementById("files").innerHTML = html;
}

refreshFiles();
</script>
</body>
</html>
`
