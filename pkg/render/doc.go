// Package render turns styled graphs into output artifacts.
//
// # Overview
//
// The renderers live in subpackages, one per output family:
//
//   - [vis]: the interactive HTML page with click-to-collapse behavior,
//     the tool's primary output
//   - [echarts]: a force-directed chart page with per-cluster legend toggles
//   - [nodelink]: styled DOT re-export plus static SVG and PNG via Graphviz
//   - [snapshot]: PNG capture of the interactive page in headless Chrome
//
// This root package holds what the HTML renderers share: script injection
// into finished pages.
//
// # Script Injection
//
// [InjectBeforeBodyClose] splices a script block in front of a page's
// closing body tag. The vis renderer uses it for the collapse handler and
// the preview server uses it for the live-reload hook.
//
// [vis]: github.com/Ezz-di/dot-to-html-graph/pkg/render/vis
// [echarts]: github.com/Ezz-di/dot-to-html-graph/pkg/render/echarts
// [nodelink]: github.com/Ezz-di/dot-to-html-graph/pkg/render/nodelink
// [snapshot]: github.com/Ezz-di/dot-to-html-graph/pkg/render/snapshot
package render
