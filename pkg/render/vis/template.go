package vis

import "fmt"

// RuntimeVersion is the vis-network release the page is built against.
const RuntimeVersion = "9.1.9"

// RuntimeURL is the standalone UMD bundle used when no inline runtime is
// supplied.
const RuntimeURL = "https://unpkg.com/vis-network@" + RuntimeVersion + "/standalone/umd/vis-network.min.js"

// pageTemplate is the HTML skeleton. Holes, in order: title, canvas width,
// canvas height, runtime script tag, nodes JSON, edges JSON, options JSON.
// The dataset variables and the network are deliberately globals so the
// injected collapse script can reach them.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <title>%s</title>
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
      * { margin: 0; }
      body { background-color: #ffffff; }
      #mynetwork { width: %s; height: %s; }
    </style>
    %s
  </head>
  <body>
    <div id="mynetwork"></div>
    <script type="text/javascript">
var nodes = new vis.DataSet(%s);
var edges = new vis.DataSet(%s);
var container = document.getElementById("mynetwork");
var network = new vis.Network(container, { nodes: nodes, edges: edges }, %s);
    </script>
  </body>
</html>
`

// toggleScript hides or reveals the clicked node's direct neighbors and
// incident edges. A second click on the same node restores exactly the
// state before the first, including items that were already hidden.
const toggleScript = `<script type="text/javascript">
function toggleNode(nodeId) {
  var connectedNodes = network.getConnectedNodes(nodeId);
  var connectedEdges = network.getConnectedEdges(nodeId);

  connectedNodes.forEach(function (id) {
    var node = nodes.get(id);
    if (node.hidden === undefined || node.hidden === false) {
      node.hidden = true;
    } else {
      node.hidden = false;
    }
    nodes.update(node);
  });

  connectedEdges.forEach(function (id) {
    var edge = edges.get(id);
    if (edge.hidden === undefined || edge.hidden === false) {
      edge.hidden = true;
    } else {
      edge.hidden = false;
    }
    edges.update(edge);
  });
}

network.on("click", function (params) {
  if (params.nodes.length === 1) {
    toggleNode(params.nodes[0]);
  }
});
</script>
`

// runtimeTag renders the script tag loading the vis-network runtime,
// inlining the bundle when one was supplied.
func runtimeTag(opts Options) string {
	if len(opts.Runtime) > 0 {
		return fmt.Sprintf("<script type=\"text/javascript\">%s</script>", opts.Runtime)
	}
	url := opts.RuntimeURL
	if url == "" {
		url = RuntimeURL
	}
	return fmt.Sprintf("<script type=%q src=%q></script>", "text/javascript", url)
}
