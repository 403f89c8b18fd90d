// mockserver runs the in-memory Foody backend on its own, so the client
// can be developed and demoed without the real deployment.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/mockapi"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "changeme"
	}

	srv := mockapi.NewServer(secret)
	addr := fmt.Sprintf(":%s", port)
	log.Println("mock backend running at", addr)
	if err := srv.Router().Run(addr); err != nil {
		log.Fatal(err)
	}
}
