package console

import (
	mdwlog "github.com/AGOODGITDUCK/PebbleCode/foundation/core/log"
	"github.com/AGOODGITDUCK/PebbleCode/internal/canvas"
)

func (c *Console) enterGUI() {
	c.guiMode = true
	c.lastDir = c.dir
	c.println("Entered GUI mode. Type 'leavegui' to return to console.")

	if c.scene == nil {
		c.scene = canvas.NewScene(c.cfg.Canvas.Width, c.cfg.Canvas.Height, c.cfg.Canvas.Background)
	}
	if c.surface == nil {
		c.surface = c.scene
	}
	if !c.dispatcher.Attached() {
		c.dispatcher.Attach(c.surface)
		c.logger.Debug("drawing surface attached", mdwlog.Fields{
			"width":  c.cfg.Canvas.Width,
			"height": c.cfg.Canvas.Height,
		})
	}
}

// leaveGUI returns to console mode, restores the directory GUI mode was
// entered from and closes the surface
func (c *Console) leaveGUI() {
	c.guiMode = false
	c.println("Left GUI mode.")

	c.dir = c.lastDir
	c.println("Current directory: " + c.dir)

	if c.dispatcher.Attached() {
		c.dispatcher.Detach()
		c.scene.Reset()
	}
}

func (c *Console) draw(line string) error {
	msg, err := c.dispatcher.Exec(line)
	if err != nil {
		return err
	}
	c.println(msg)
	return nil
}
