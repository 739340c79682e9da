package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/studyreel/studyreel/core"
	"github.com/studyreel/studyreel/storage"
)

func TestConceptBasics(t *testing.T) {
	materialRepo, conceptRepo, _ := newTestRepos(t)
	ctx := context.Background()

	material, err := materialRepo.AddMaterial(ctx, &core.Material{Title: "Physics"})
	if err != nil {
		t.Fatalf("Failed to add material: %v", err)
	}

	concepts := []*core.Concept{
		{MaterialId: material.Id, Title: "Concept 1: Newton's laws", Summary: "Newton's laws", Priority: 0},
		{MaterialId: material.Id, Title: "Concept 2: Energy", Summary: "Energy is conserved", Priority: 1},
	}

	added, err := conceptRepo.AddConcepts(ctx, concepts...)
	if err != nil {
		t.Fatalf("Failed to add concepts: %v", err)
	}
	if len(added) != 2 {
		t.Fatalf("Expected 2 concepts, got %d", len(added))
	}
	for _, concept := range added {
		if concept.Id == 0 {
			t.Fatal("Expected non-zero concept ID")
		}
		if concept.InsertedAt.IsZero() {
			t.Fatal("Expected InsertedAt to be set")
		}
	}

	retrieved, err := conceptRepo.GetConcept(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get concept: %v", err)
	}
	if retrieved.Summary != "Newton's laws" {
		t.Fatalf("Unexpected summary: %s", retrieved.Summary)
	}
}

func TestConceptNotFound(t *testing.T) {
	_, conceptRepo, _ := newTestRepos(t)

	_, err := conceptRepo.GetConcept(context.Background(), 12345)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestConceptValidation(t *testing.T) {
	_, conceptRepo, _ := newTestRepos(t)

	_, err := conceptRepo.AddConcepts(context.Background(), &core.Concept{MaterialId: 1})
	if !errors.Is(err, core.ErrInvalidConcept) {
		t.Fatalf("Expected ErrInvalidConcept for empty title, got %v", err)
	}
}

func TestGetConceptsByMaterial(t *testing.T) {
	materialRepo, conceptRepo, _ := newTestRepos(t)
	ctx := context.Background()

	matA, err := materialRepo.AddMaterial(ctx, &core.Material{Title: "A"})
	if err != nil {
		t.Fatalf("Failed to add material: %v", err)
	}
	matB, err := materialRepo.AddMaterial(ctx, &core.Material{Title: "B"})
	if err != nil {
		t.Fatalf("Failed to add material: %v", err)
	}

	_, err = conceptRepo.AddConcepts(ctx,
		&core.Concept{MaterialId: matA.Id, Title: "a1", Priority: 0},
		&core.Concept{MaterialId: matB.Id, Title: "b1", Priority: 0},
		&core.Concept{MaterialId: matA.Id, Title: "a2", Priority: 1},
	)
	if err != nil {
		t.Fatalf("Failed to add concepts: %v", err)
	}

	conceptsA, err := conceptRepo.GetConceptsByMaterial(ctx, matA.Id)
	if err != nil {
		t.Fatalf("Failed to get concepts: %v", err)
	}
	if len(conceptsA) != 2 {
		t.Fatalf("Expected 2 concepts for material A, got %d", len(conceptsA))
	}
	for _, concept := range conceptsA {
		if concept.MaterialId != matA.Id {
			t.Fatal("Concept scoped to wrong material")
		}
	}

	// IDs come from a shared sequence so iteration order is ascending
	if conceptsA[0].Id >= conceptsA[1].Id {
		t.Fatal("Expected concepts ordered by ID ascending")
	}

	conceptsB, err := conceptRepo.GetConceptsByMaterial(ctx, matB.Id)
	if err != nil {
		t.Fatalf("Failed to get concepts: %v", err)
	}
	if len(conceptsB) != 1 {
		t.Fatalf("Expected 1 concept for material B, got %d", len(conceptsB))
	}
}

func TestGetConceptsByMaterialEmpty(t *testing.T) {
	_, conceptRepo, _ := newTestRepos(t)

	concepts, err := conceptRepo.GetConceptsByMaterial(context.Background(), 777)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(concepts) != 0 {
		t.Fatalf("Expected no concepts, got %d", len(concepts))
	}
}

func TestConceptRerunAppends(t *testing.T) {
	materialRepo, conceptRepo, _ := newTestRepos(t)
	ctx := context.Background()

	material, err := materialRepo.AddMaterial(ctx, &core.Material{Title: "Physics"})
	if err != nil {
		t.Fatalf("Failed to add material: %v", err)
	}

	for run := 0; run < 2; run++ {
		_, err := conceptRepo.AddConcepts(ctx,
			&core.Concept{MaterialId: material.Id, Title: "Concept 1: Newton's laws", Priority: 0},
		)
		if err != nil {
			t.Fatalf("Failed to add concepts on run %d: %v", run, err)
		}
	}

	concepts, err := conceptRepo.GetConceptsByMaterial(ctx, material.Id)
	if err != nil {
		t.Fatalf("Failed to get concepts: %v", err)
	}
	// Sequence IDs mean reruns append new rows rather than overwrite
	if len(concepts) != 2 {
		t.Fatalf("Expected 2 concepts after rerun, got %d", len(concepts))
	}
}
