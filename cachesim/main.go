// Command cachesim replays a memory trace against a set-associative cache
// model and prints the hit, miss and eviction counts.
package main

import "github.com/sarchlab/cachesim/cachesim/cmd"

func main() {
	cmd.Execute()
}
