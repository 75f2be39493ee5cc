// Command kvarena is an external collaborator over a [arena.Arena]: it
// never touches the arena's internals directly, only the CRUD, iterator,
// stats, and collector surface the core package exports.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
