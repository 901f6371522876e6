// Command canvasctl runs and inspects mediacanvas scenarios headlessly.
package main

import "github.com/phanxgames/mediacanvas/cmd/canvasctl/cmd"

func main() {
	cmd.Execute()
}
