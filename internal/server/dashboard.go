package server

import (
	"html/template"
	"net/http"
)

type dashboardData struct {
	Title string
}

var dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardHTML))

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	// Handle logout
	if r.URL.Query().Get("logout") == "1" {
		http.SetCookie(w, &http.Cookie{
			Name:   tokenCookieName,
			Value:  "",
			Path:   "/",
			MaxAge: -1,
		})
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, dashboardData{Title: "trend-goat"}); err != nil {
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

// The dashboard is a thin consumer of /api/chart: all reshaping (variant
// selection, granularity, zoom/pan, mode) round-trips through the server
// pipeline, and the page only draws what it is handed.
const dashboardHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
:root { --bg: #ffffff; --fg: #1a1a1a; --grid: #e0e0e0; --panel: #f5f5f5; }
body.dark { --bg: #16161c; --fg: #e8e8e8; --grid: #33333d; --panel: #22222a; }
body { background: var(--bg); color: var(--fg); font: 14px/1.4 system-ui, sans-serif; margin: 0; padding: 1.5rem; }
h1 { font-size: 1.2rem; }
#controls { display: flex; flex-wrap: wrap; gap: .75rem; align-items: center; background: var(--panel); padding: .75rem; border-radius: 6px; margin-bottom: 1rem; }
#controls label { display: flex; gap: .3rem; align-items: center; }
canvas { background: var(--panel); border-radius: 6px; width: 100%; }
button, select { font: inherit; }
</style>
</head>
<body>
<h1>&#128016; trend-goat</h1>
<div id="controls">
  <select id="experiment"></select>
  <span id="variants"></span>
  <select id="granularity"><option value="day">Daily</option><option value="week">Weekly</option></select>
  <select id="mode"><option value="line">Line</option><option value="smooth">Smooth</option><option value="area">Area</option></select>
  <label>Zoom <input id="zoom" type="range" min="1" max="5" step="0.5" value="1"></label>
  <label>Pan <input id="pan" type="range" min="0" max="100" step="1" value="0"></label>
  <button id="theme">Theme</button>
  <button id="snapshot">PNG</button>
  <a href="/dashboard?logout=1">Logout</a>
</div>
<canvas id="chart" width="1200" height="420"></canvas>
<script>
const colors = ["#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6", "#06B6D4"];
const $ = id => document.getElementById(id);
let current = null, socket = null;

async function loadExperiments() {
  const res = await fetch('/api/experiments');
  const body = await res.json();
  const sel = $('experiment');
  sel.innerHTML = '';
  for (const e of body.experiments) {
    const opt = document.createElement('option');
    opt.value = e.name;
    opt.textContent = e.name;
    opt.dataset.variants = JSON.stringify(e.variants);
    sel.appendChild(opt);
  }
  renderVariantToggles();
  refresh();
}

function renderVariantToggles() {
  const opt = $('experiment').selectedOptions[0];
  const span = $('variants');
  span.innerHTML = '';
  if (!opt) return;
  for (const v of JSON.parse(opt.dataset.variants)) {
    const label = document.createElement('label');
    const box = document.createElement('input');
    box.type = 'checkbox';
    box.checked = true;
    box.value = v.key;
    box.addEventListener('change', refresh);
    label.appendChild(box);
    label.appendChild(document.createTextNode(v.name));
    span.appendChild(label);
  }
}

function selectedKeys() {
  return [...$('variants').querySelectorAll('input:checked')].map(b => b.value);
}

async function refresh() {
  const name = $('experiment').value;
  if (!name) return;
  const params = new URLSearchParams({
    experiment: name,
    variants: selectedKeys().join(','),
    granularity: $('granularity').value,
    mode: $('mode').value,
    zoom: $('zoom').value,
    pan: $('pan').value,
  });
  const res = await fetch('/api/chart?' + params);
  if (!res.ok) return;
  current = await res.json();
  draw();
  subscribe(name);
}

function subscribe(name) {
  if (socket && socket.experiment === name) return;
  if (socket) socket.close();
  const proto = location.protocol === 'https:' ? 'wss:' : 'ws:';
  socket = new WebSocket(proto + '//' + location.host + '/live?experiment=' + encodeURIComponent(name));
  socket.experiment = name;
  socket.onmessage = refresh;
}

function draw() {
  if (!current) return;
  const c = $('chart'), ctx = c.getContext('2d');
  const css = getComputedStyle(document.body);
  ctx.fillStyle = css.getPropertyValue('--panel');
  ctx.fillRect(0, 0, c.width, c.height);
  const pts = current.points, dom = current.domain;
  const pad = { l: 50, r: 16, t: 16, b: 30 };
  const w = c.width - pad.l - pad.r, h = c.height - pad.t - pad.b;
  const y = v => pad.t + h - (v - dom.min) / (dom.max - dom.min) * h;
  const x = i => pts.length > 1 ? pad.l + i / (pts.length - 1) * w : pad.l + w / 2;
  ctx.strokeStyle = css.getPropertyValue('--grid');
  ctx.fillStyle = css.getPropertyValue('--fg');
  for (let g = 0; g <= 4; g++) {
    const v = dom.min + (dom.max - dom.min) * g / 4;
    ctx.beginPath(); ctx.moveTo(pad.l, y(v)); ctx.lineTo(pad.l + w, y(v)); ctx.stroke();
    ctx.fillText(v.toFixed(1) + '%', 4, y(v) + 4);
  }
  current.keys.forEach((key, ki) => {
    ctx.strokeStyle = colors[ki % colors.length];
    ctx.lineWidth = 2;
    ctx.beginPath();
    pts.forEach((p, i) => {
      const px = x(i), py = y(p.values[key] ?? 0);
      i === 0 ? ctx.moveTo(px, py) : ctx.lineTo(px, py);
    });
    ctx.stroke();
    if (current.mode === 'area' && pts.length > 1) {
      ctx.lineTo(x(pts.length - 1), pad.t + h);
      ctx.lineTo(x(0), pad.t + h);
      ctx.closePath();
      ctx.globalAlpha = 0.15;
      ctx.fillStyle = colors[ki % colors.length];
      ctx.fill();
      ctx.globalAlpha = 1;
      ctx.fillStyle = css.getPropertyValue('--fg');
    }
  });
  if (pts.length > 0) {
    ctx.fillText(pts[0].date, pad.l, c.height - 8);
    const last = pts[pts.length - 1].date;
    ctx.fillText(last, pad.l + w - ctx.measureText(last).width, c.height - 8);
  }
}

$('experiment').addEventListener('change', () => { renderVariantToggles(); refresh(); });
for (const id of ['granularity', 'mode', 'zoom', 'pan']) $(id).addEventListener('input', refresh);
$('theme').addEventListener('click', () => { document.body.classList.toggle('dark'); draw(); });
$('snapshot').addEventListener('click', () => {
  const a = document.createElement('a');
  a.download = ($('experiment').value || 'chart') + '.png';
  a.href = $('chart').toDataURL('image/png');
  a.click();
});
loadExperiments();
</script>
</body>
</html>
`
