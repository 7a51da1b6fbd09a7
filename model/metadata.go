package model

type TrackMetadata struct {
	Title   string
	Author  string
	Release string
	Year    uint
}
