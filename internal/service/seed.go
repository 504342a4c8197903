package service

import (
	"time"

	"github.com/phrazzld/scry-notes/internal/domain"
)

// Demo account available on a freshly seeded store.
const (
	DemoUserID   = "1"
	DemoEmail    = "demo@example.com"
	DemoName     = "Demo User"
	DemoPassword = "password"
)

func demoUser() domain.User {
	return domain.User{ID: DemoUserID, Email: DemoEmail, Name: DemoName}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// sampleNotes are the two notes a new installation starts with.
func sampleNotes() []domain.Note {
	return []domain.Note{
		{
			ID:    "1",
			Title: "Biology 101: Cell Structure",
			Content: "Cells are the basic structural and functional units of life. They are composed of organelles such as the nucleus, mitochondria, and endoplasmic reticulum.\n\n" +
				"The nucleus contains genetic material (DNA) that controls cellular activities.\n\n" +
				"Mitochondria are the powerhouses of the cell, generating energy through cellular respiration.",
			CreatedAt:  date(2023, time.May, 10),
			UpdatedAt:  date(2023, time.May, 15),
			OwnerID:    DemoUserID,
			SharedWith: []string{},
			IsPublic:   false,
			Tags:       []string{"biology", "science", "cells"},
		},
		{
			ID:    "2",
			Title: "History: World War II Overview",
			Content: "World War II (1939-1945) was a global conflict involving most of the world's nations.\n\n" +
				"Key events:\n" +
				"- Germany invaded Poland on September 1, 1939\n" +
				"- Japan attacked Pearl Harbor on December 7, 1941\n" +
				"- D-Day invasion occurred on June 6, 1944\n" +
				"- Germany surrendered on May 8, 1945\n" +
				"- Japan surrendered on September 2, 1945 after atomic bombings",
			CreatedAt:  date(2023, time.June, 12),
			UpdatedAt:  date(2023, time.June, 14),
			OwnerID:    DemoUserID,
			SharedWith: []string{},
			IsPublic:   true,
			Tags:       []string{"history", "world war II"},
		},
	}
}
