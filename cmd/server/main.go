package main

import "pdpconsole/internal/app/server"

func main() {
	server.Run()
}
