package main

import "workpush/internal/app"

func main() {
	app.Run()
}
