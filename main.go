package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/sheikhshariarnehal/portfolio-backend/api"
	"github.com/sheikhshariarnehal/portfolio-backend/config"
	"github.com/sheikhshariarnehal/portfolio-backend/store"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()
	projectsFile := config.GetString(c, config.KeyProjectsFile, config.DefaultProjectsFile)
	backupDir := config.GetString(c, config.KeyBackupDir, config.DefaultBackupDir)
	imagesDir := config.GetString(c, config.KeyImagesDir, config.DefaultImagesDir)

	if err := ensureLayout(projectsFile, backupDir, imagesDir); err != nil {
		fmt.Printf("Error preparing filesystem layout: %v\n", err)
		os.Exit(1)
	}

	currentStore := store.New(projectsFile, backupDir, imagesDir)

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentStore)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// ensureLayout creates the directories the store depends on and seeds
// an empty projects document when none exists yet.
func ensureLayout(projectsFile, backupDir, imagesDir string) error {
	for _, dir := range []string{filepath.Dir(projectsFile), backupDir, imagesDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	if _, err := os.Stat(projectsFile); os.IsNotExist(err) {
		if err := os.WriteFile(projectsFile, []byte("[]"), 0o644); err != nil {
			return err
		}
		log.Info().Str("path", projectsFile).Msg("created empty projects document")
	} else if err != nil {
		return err
	}

	return nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
