// Command screenpom-server runs the POM conversion service.
//
// Configuration is read from the environment (a .env file is loaded
// when present):
//
//	PORT           listen port (default 8080)
//	INFERENCE_URL  base URL of the object detection service (required)
//	OCR_LANGUAGE   tesseract language to load (default eng)
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/screenpom/screenpom/detect"
	"github.com/screenpom/screenpom/ocr"
	"github.com/screenpom/screenpom/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	inferenceURL := os.Getenv("INFERENCE_URL")
	if inferenceURL == "" {
		log.Fatal("INFERENCE_URL must be set")
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	language := os.Getenv("OCR_LANGUAGE")
	if language == "" {
		language = "eng"
	}

	detector := detect.NewHTTPDetector(inferenceURL, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := detector.CheckHealth(ctx); err != nil {
		log.Printf("detection service not reachable at %s: %v", inferenceURL, err)
	}

	var reader server.Reader
	client, err := ocr.New()
	if err != nil {
		log.Printf("OCR unavailable, text recognition disabled: %v", err)
	} else {
		defer client.Close()
		if err := client.SetLanguage(language); err != nil {
			log.Fatalf("set OCR language %q: %v", language, err)
		}
		reader = client
	}

	srv := server.New(detector, reader, log.Default())

	log.Printf("listening on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, srv.Routes()))
}
