package console

const helpText = `Available commands:
  exit            - Exit the Pebble console
  credits         - Show console credits
  help            - Show this help message
  cd <folder>     - Change current directory
  run <file>      - Run a Pebble program
  pebble <file>   - Run a console script line by line
  print <expr>    - Evaluate and print an expression
  vars            - List session variables
  history [n]     - Show the last n commands
  gui <command>   - GUI commands or 'gui mode'
  leavegui        - Exit GUI mode if in it

Simple GUI instructions:
  1. gui canvas <width> <height>
  2. gui color <color>
  3. gui text "<text>" pos x:<num> z:<num>
  4. gui oval x:<startX> z:<startZ> x2:<endX> z2:<endZ> fill:<color>
  5. gui rect x:<startX> z:<startZ> x2:<endX> z2:<endZ> fill:<color>
  6. gui line x:<startX> z:<startZ> x2:<endX> z2:<endZ> color:<color>
  7. gui move id:<elementID> x:<dx> z:<dz>
  8. gui delete id:<elementID>
  9. gui clear`

func (c *Console) printHelp() {
	c.println(helpText)
}
