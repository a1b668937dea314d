package main

import "github.com/frahmantamala/chat-management/cmd"

func main() {
	cmd.Execute()
}
