// Package md2card renders Markdown notes as fixed-size social card images.
//
// # Quick Start
//
// Create a service, convert markdown, and close when done:
//
//	svc, err := md2card.NewService()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer svc.Close()
//
//	result, err := svc.Convert(ctx, md2card.Input{
//	    Markdown: "# Hello\n\nWorld",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for i, img := range result.Images {
//	    os.WriteFile(fmt.Sprintf("card-%02d.png", i+1), img, 0644)
//	}
//
// The result contains the rendered images (result.Images), the full card
// HTML documents (result.Pages), and the raw page fragments
// (result.Fragments) for debugging. Use Input.HTMLOnly to skip rendering.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Markdown preprocessing (line normalization, ==highlight== syntax,
//     <!-- pagebreak --> directives)
//  2. Markdown to HTML conversion via Goldmark (GFM, syntax highlighting)
//  3. Pagination: the HTML fragment is classified into typed blocks with
//     estimated pixel heights and partitioned into pages that fit the card
//  4. Card templating (theme CSS, watermark, footer, page numbers)
//  5. Image capture via headless Chrome (go-rod) at the exact card viewport
//
// # Pagination
//
// The pagination engine is usable on its own via Paginator:
//
//	p := md2card.NewPaginator(md2card.WithPageSize(md2card.PresetSmall))
//	pages := p.Paginate(htmlFragment)
//
// Paginate is deterministic: the same fragment and preset always produce the
// same pages. Explicit page breaks (<!-- pagebreak --> in Markdown, or the
// marker div in HTML) force page boundaries; headings stay with following
// content; sparse trailing pages are merged into their predecessors.
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc, err := md2card.NewService(
//	    md2card.WithTimeout(2 * time.Minute),
//	    md2card.WithPreset(md2card.PresetLarge),
//	    md2card.WithTheme("dark"),
//	)
//
// Per-conversion options are passed via Input:
//
//	result, err := svc.Convert(ctx, md2card.Input{
//	    Markdown:  content,
//	    Theme:     "insta",
//	    CSS:       ".content { font-size: 18px; }",
//	    Watermark: "@myhandle",
//	    Footer:    "auto:long",
//	    Format:    "jpeg",
//	    Quality:   85,
//	})
//
// # Parallel Processing
//
// For batch conversion, use ServicePool to manage multiple browser instances:
//
//	pool := md2card.NewServicePool(4)
//	defer pool.Close()
//
//	svc, err := pool.Acquire()
//	defer pool.Release(svc)
//	result, err := svc.Convert(ctx, input)
//
// # Custom Assets
//
// Override built-in themes and the card template using AssetLoader:
//
//	loader, err := md2card.NewAssetLoader("/path/to/assets")
//	svc, err := md2card.NewService(md2card.WithAssetLoader(loader))
//
// Asset directory structure:
//
//	assets/
//	├── styles/
//	│   └── custom.css
//	└── templates/
//	    └── card.html
//
// # Browser Requirements
//
// Image capture requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set CI=true to disable the Chrome
// sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package md2card
