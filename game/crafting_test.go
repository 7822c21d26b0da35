package game

import "testing"

func testRecipe() Recipe {
	return Recipe{
		ID:          "iron_plate",
		Inputs:      map[string]int{"iron": 10},
		OutputItem:  "iron_plate",
		OutputQty:   1,
		CraftTimeMS: 3000,
	}
}

func TestTryStartConsumesInputs(t *testing.T) {
	q := NewCraftingQueue()
	inv := NewInventory()
	inv.Counts["iron"] = 100

	job, err := q.TryStart(testRecipe(), inv, 0)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if inv.Counts["iron"] != 90 {
		t.Fatalf("inputs not consumed: iron = %d", inv.Counts["iron"])
	}
	if job.EndMS != 3000 {
		t.Fatalf("job end = %d, want 3000", job.EndMS)
	}
}

func TestQueueCapsAtThreeJobs(t *testing.T) {
	q := NewCraftingQueue()
	inv := NewInventory()
	inv.Counts["iron"] = 100

	for i := 0; i < 3; i++ {
		if _, err := q.TryStart(testRecipe(), inv, 0); err != nil {
			t.Fatalf("start %d failed: %v", i, err)
		}
	}
	if _, err := q.TryStart(testRecipe(), inv, 0); err == nil {
		t.Fatal("fourth job should refuse with queue full")
	}
	if inv.Counts["iron"] != 70 {
		t.Fatalf("refused job consumed inputs: iron = %d", inv.Counts["iron"])
	}
}

func TestTryStartRefusesInsufficientInputs(t *testing.T) {
	q := NewCraftingQueue()
	inv := NewInventory()
	inv.Counts["iron"] = 5

	if _, err := q.TryStart(testRecipe(), inv, 0); err == nil {
		t.Fatal("expected insufficient-input refusal")
	}
	if inv.Counts["iron"] != 5 {
		t.Fatalf("failed start mutated inventory: %d", inv.Counts["iron"])
	}
}

func TestTickDeliversCompletedJobs(t *testing.T) {
	recipes := map[string]Recipe{"iron_plate": testRecipe()}
	q := NewCraftingQueue()
	inv := NewInventory()
	inv.Counts["iron"] = 100

	for i := 0; i < 3; i++ {
		if _, err := q.TryStart(testRecipe(), inv, 0); err != nil {
			t.Fatalf("start %d failed: %v", i, err)
		}
	}
	if results := q.Tick(2999, recipes, inv); len(results) != 0 {
		t.Fatalf("jobs finished early: %v", results)
	}
	results := q.Tick(3000, recipes, inv)
	if len(results) != 3 {
		t.Fatalf("expected 3 completions, got %d", len(results))
	}
	for _, r := range results {
		if r.Failed {
			t.Fatalf("unexpected failure: %+v", r)
		}
	}
	if inv.Counts["iron"] != 70 || inv.Counts["iron_plate"] != 3 {
		t.Fatalf("delivery wrong: iron=%d plates=%d", inv.Counts["iron"], inv.Counts["iron_plate"])
	}
	if len(q.Jobs) != 0 {
		t.Fatalf("finished jobs not pruned: %d", len(q.Jobs))
	}
}

func TestTickMarksFailedWhenInventoryFull(t *testing.T) {
	recipes := map[string]Recipe{"iron_plate": testRecipe()}
	q := NewCraftingQueue()
	inv := NewInventory()
	inv.Counts["iron"] = 10

	if _, err := q.TryStart(testRecipe(), inv, 0); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	inv.Counts["rock"] = inv.Capacity // no head-room for the output

	results := q.Tick(3000, recipes, inv)
	if len(results) != 1 || !results[0].Failed {
		t.Fatalf("expected one failed result, got %v", results)
	}
	// Consumed inputs stay consumed; the failure is not a refund path.
	if inv.Counts["iron"] != 0 {
		t.Fatalf("failed craft refunded inputs: iron = %d", inv.Counts["iron"])
	}
}
