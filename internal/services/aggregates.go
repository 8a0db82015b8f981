package services

import (
	"log"
	"sync"
	"time"

	"mekanlist/internal/db"
	"mekanlist/internal/models"
)

// AggregateService reconciles the denormalized vote aggregates on places and
// collections against the votes table in the background. Vote transactions
// already recount synchronously; this worker absorbs drift from crashed
// saves and runs the nightly full pass.
type AggregateService struct {
	queue   chan recountJob
	pending map[recountJob]bool
	mu      sync.Mutex
}

type recountJob struct {
	collection bool
	id         uint
}

var (
	aggregateService *AggregateService
	aggregateOnce    sync.Once
)

// GetAggregateService returns the singleton worker, starting it on first use.
func GetAggregateService() *AggregateService {
	aggregateOnce.Do(func() {
		aggregateService = &AggregateService{
			queue:   make(chan recountJob, 1000),
			pending: make(map[recountJob]bool),
		}
		go aggregateService.worker()
	})
	return aggregateService
}

// SchedulePlace queues a place for aggregate recount. Deduplicated, so a
// burst of votes on the same place costs one recount.
func (s *AggregateService) SchedulePlace(placeID uint) {
	s.schedule(recountJob{id: placeID})
}

// ScheduleCollection queues a collection for aggregate recount.
func (s *AggregateService) ScheduleCollection(collectionID uint) {
	s.schedule(recountJob{collection: true, id: collectionID})
}

func (s *AggregateService) schedule(job recountJob) {
	s.mu.Lock()
	if s.pending[job] {
		s.mu.Unlock()
		return
	}
	s.pending[job] = true
	s.mu.Unlock()

	select {
	case s.queue <- job:
	default:
		s.mu.Lock()
		delete(s.pending, job)
		s.mu.Unlock()
		log.Printf("Aggregate queue full, skipping recount for %v", job)
	}
}

func (s *AggregateService) worker() {
	batch := make([]recountJob, 0, 50)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case job := <-s.queue:
			batch = append(batch, job)
			if len(batch) >= 50 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

func (s *AggregateService) processBatch(jobs []recountJob) {
	for _, job := range jobs {
		s.recount(job)

		s.mu.Lock()
		delete(s.pending, job)
		s.mu.Unlock()
	}
}

func (s *AggregateService) recount(job recountJob) {
	target := voteTarget{placeID: &job.id}
	if job.collection {
		target = voteTarget{collectionID: &job.id}
	}
	if _, _, err := recountTarget(db.DB, target); err != nil {
		log.Printf("Aggregate recount failed for %v: %v", job, err)
	}
}

// StartScheduledRecount kicks off the nightly reconciliation pass (04:00
// local) over everything that has vote rows.
func (s *AggregateService) StartScheduledRecount() {
	go func() {
		for {
			now := time.Now()
			next := time.Date(now.Year(), now.Month(), now.Day(), 4, 0, 0, 0, now.Location())
			if now.After(next) {
				next = next.Add(24 * time.Hour)
			}
			time.Sleep(time.Until(next))

			log.Println("Starting scheduled aggregate recount...")
			s.recountAllVoted()
			log.Println("Scheduled aggregate recount completed")
		}
	}()
}

func (s *AggregateService) recountAllVoted() {
	var placeIDs []uint
	db.DB.Model(&models.Vote{}).Where("place_id IS NOT NULL").
		Distinct("place_id").Pluck("place_id", &placeIDs)
	for _, id := range placeIDs {
		s.recount(recountJob{id: id})
	}

	var collectionIDs []uint
	db.DB.Model(&models.Vote{}).Where("collection_id IS NOT NULL").
		Distinct("collection_id").Pluck("collection_id", &collectionIDs)
	for _, id := range collectionIDs {
		s.recount(recountJob{collection: true, id: id})
	}

	log.Printf("Recounted %d places and %d collections", len(placeIDs), len(collectionIDs))
}
