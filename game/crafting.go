package game

import "fmt"

// MaxConcurrentJobs bounds a player's crafting queue.
const MaxConcurrentJobs = 3

// JobStatus is a crafting job's lifecycle state.
type JobStatus int

const (
	JobCrafting JobStatus = iota
	JobComplete
	JobFailed
)

// Recipe describes one craftable item: its inputs, output and timing.
type Recipe struct {
	ID         string
	Inputs     map[string]int
	OutputItem string
	OutputQty  int
	CraftTimeMS int64
}

// CraftingJob is one in-flight or finished craft.
type CraftingJob struct {
	RecipeID string
	StartMS  int64
	EndMS    int64
	Status   JobStatus
}

// CraftingQueue holds up to MaxConcurrentJobs jobs for one player.
type CraftingQueue struct {
	Jobs []*CraftingJob
}

// NewCraftingQueue returns an empty queue.
func NewCraftingQueue() *CraftingQueue {
	return &CraftingQueue{}
}

// activeCount returns the number of jobs still in the Crafting state.
func (q *CraftingQueue) activeCount() int {
	n := 0
	for _, j := range q.Jobs {
		if j.Status == JobCrafting {
			n++
		}
	}
	return n
}

// TryStart validates recipe inputs and queue capacity, atomically
// removing the inputs from inv and enqueuing a new job on success.
func (q *CraftingQueue) TryStart(recipe Recipe, inv *Inventory, nowMS int64) (*CraftingJob, error) {
	if q.activeCount() >= MaxConcurrentJobs {
		return nil, fmt.Errorf("queue full")
	}
	for item, need := range recipe.Inputs {
		if !inv.Has(item, need) {
			return nil, fmt.Errorf("insufficient %s", item)
		}
	}
	for item, need := range recipe.Inputs {
		if err := inv.Remove(item, need); err != nil {
			// Inputs were validated above; this should not happen, but
			// never leave the inventory partially debited.
			return nil, err
		}
	}
	job := &CraftingJob{
		RecipeID: recipe.ID,
		StartMS:  nowMS,
		EndMS:    nowMS + recipe.CraftTimeMS,
		Status:   JobCrafting,
	}
	q.Jobs = append(q.Jobs, job)
	return job, nil
}

// TickResult reports one job's completion on a given tick.
type TickResult struct {
	Job    *CraftingJob
	Failed bool
}

// Tick advances jobs whose EndMS has passed: delivering output via
// recipes lookup and inv, or marking Failed if delivery can't fit.
// Finished jobs (Complete or Failed) are pruned from the queue after
// this call. Inputs already consumed at TryStart are never refunded
// on failure.
func (q *CraftingQueue) Tick(nowMS int64, recipes map[string]Recipe, inv *Inventory) []TickResult {
	var results []TickResult
	remaining := q.Jobs[:0]
	for _, job := range q.Jobs {
		if job.Status == JobCrafting && nowMS >= job.EndMS {
			recipe := recipes[job.RecipeID]
			if err := inv.Add(recipe.OutputItem, recipe.OutputQty); err != nil {
				job.Status = JobFailed
				results = append(results, TickResult{Job: job, Failed: true})
			} else {
				job.Status = JobComplete
				results = append(results, TickResult{Job: job, Failed: false})
			}
			continue // pruned: finished jobs aren't kept
		}
		remaining = append(remaining, job)
	}
	q.Jobs = remaining
	return results
}
