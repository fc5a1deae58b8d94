package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const (
	htmxScriptURL  = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"
	chartScriptURL = "https://cdn.jsdelivr.net/npm/chart.js@4.4.7/dist/chart.umd.min.js"
)

// chartBootstrap draws every element carrying data-chart from its JSON script
const chartBootstrap = `document.querySelectorAll("[data-chart]").forEach(function (el) {
  var src = document.getElementById(el.dataset.chart);
  if (!src || !window.Chart) return;
  var cfg = JSON.parse(src.textContent);
  var canvas = document.createElement("canvas");
  el.appendChild(canvas);
  new Chart(canvas, {
    type: cfg.type === "pie" ? "doughnut" : "bar",
    data: {
      labels: cfg.data.map(function (d) { return d.label; }),
      datasets: [{ data: cfg.data.map(function (d) { return d.value; }), backgroundColor: cfg.colors }]
    },
    options: { maintainAspectRatio: false, plugins: { legend: { display: cfg.type === "pie" } } }
  });
});`

// Layout wraps body in the HTML document shell. Scripts carry the request's
// CSP nonce.
func Layout(title, nonce string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := NewHTMLWriter(w)

		h.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.Text(title)
		h.Raw(`</title>`)
		for _, src := range []string{htmxScriptURL, chartScriptURL} {
			h.Raw(`<script defer`)
			h.Attr("src", src)
			h.Attr("nonce", nonce)
			h.Raw(`></script>`)
		}
		h.Raw(`</head><body class="bg-gray-50 font-sans"><main class="container mx-auto px-4">`)

		if h.Err() != nil {
			return h.Err()
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}

		h.Raw(`</main><script`)
		h.Attr("nonce", nonce)
		h.Raw(`>window.addEventListener("load", function () {`)
		h.Raw(chartBootstrap)
		h.Raw(`});</script></body></html>`)
		return h.Err()
	})
}
