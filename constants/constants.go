package constants

import "os"

// Audio
const SampleRate = 44100
const OctaveOffset = 4
const DurationBuffer = 0.1

// Practice game geometry, in the pixel units of the original on-screen game
const Width = 800
const Height = 400
const NoteSpeed = 150 // pixels per second
const ThresholdX = 200
const HitWindowPx = 40

const DefaultTrackFile = "music.txt"
const DefaultComposeFile = "track.txt"

const MetadataTable = "slideplay-metadata"

func GetDBEndpoint() string {
	endpoint := os.Getenv("SLIDEPLAY_DB_ENDPOINT")
	if endpoint != "" {
		return endpoint
	}
	return "http://localhost:8000"
}

func GetListenAddr() string {
	addr := os.Getenv("SLIDEPLAY_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}
