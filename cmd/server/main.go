package main

import "memories-backend/internal/app"

func main() {
	app.Run()
}
