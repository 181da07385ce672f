// Package boxoffice extracts concert listings from boxofficeticketsales.com.
//
// Two strategies produce records. The primary strategy scrapes the
// esRequest descriptor the site embeds in its page markup and replays it as
// paginated POST requests against the structured listings API. When any part
// of that path fails, extraction falls back to reading the rendered DOM
// rows directly. The fallback surfaces no per-record errors, only
// omissions.
//
// The package also fetches per-venue listing pages for explicitly targeted
// venues, independent of the main listing page.
package boxoffice
