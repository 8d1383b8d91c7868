package store

import (
	"log"
	"os"
)

// Open selects the backend from the environment. STORE_BACKEND picks
// redis (default), mongo, or memory; a connect failure falls back to the
// in-memory backend so the service still comes up for local work.
func Open() Backend {
	switch os.Getenv("STORE_BACKEND") {
	case "mongo":
		uri := os.Getenv("MONGO_URI")
		if uri == "" {
			uri = "mongodb://localhost:27017"
		}
		b, err := NewMongoBackend(uri)
		if err != nil {
			log.Println("store: mongo connect failed, using memory:", err)
			return NewMemoryBackend()
		}
		log.Println("store: using mongo backend")
		return b
	case "memory":
		log.Println("store: using memory backend (values will not survive restarts)")
		return NewMemoryBackend()
	default:
		url := os.Getenv("REDIS_URL")
		if url == "" {
			url = "redis://localhost:6379/0"
		}
		b, err := NewRedisBackend(url)
		if err != nil {
			log.Println("store: redis connect failed, using memory:", err)
			return NewMemoryBackend()
		}
		log.Println("store: using redis backend")
		return b
	}
}
