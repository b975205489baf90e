package workers

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/huecraft/colorspecbackend/config"
	"github.com/huecraft/colorspecbackend/database"
	"github.com/huecraft/colorspecbackend/media"
	"github.com/huecraft/colorspecbackend/realtime"
	"github.com/huecraft/colorspecbackend/repository"
)

// PhotoJob is one queued preview task for an uploaded photo
type PhotoJob struct {
	PhotoID    uint
	StoredPath string
}

// PhotoProcessor runs a pool of workers that render previews and extract
// capture metadata for uploaded photos
type PhotoProcessor struct {
	JobQueue  chan PhotoJob
	Config    config.Config
	Photos    repository.PhotoRepositoryInterface
	Processor *media.Processor
	Hub       *realtime.Hub
	Wg        sync.WaitGroup
	StopChan  chan struct{}
	Pending   map[uint]bool
	Mutex     sync.Mutex
}

func NewPhotoProcessor(cfg config.Config, photos repository.PhotoRepositoryInterface, processor *media.Processor, hub *realtime.Hub, queueSize, numWorkers int) *PhotoProcessor {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	if queueSize <= 0 {
		queueSize = 100
	}
	proc := &PhotoProcessor{
		JobQueue:  make(chan PhotoJob, queueSize),
		Config:    cfg,
		Photos:    photos,
		Processor: processor,
		Hub:       hub,
		StopChan:  make(chan struct{}),
		Pending:   make(map[uint]bool),
	}
	proc.Wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go proc.worker(i)
	}
	log.Printf("Started %d photo processing worker(s) with queue size %d", numWorkers, queueSize)
	return proc
}

// worker processes jobs from the queue
func (pp *PhotoProcessor) worker(id int) {
	defer pp.Wg.Done()

	log.Printf("Photo worker %d started", id)
	for {
		select {
		case job, ok := <-pp.JobQueue:
			if !ok {
				log.Printf("Photo worker %d stopping: Job queue closed", id)
				return
			}

			log.Printf("Worker %d: Received preview job for photo %d", id, job.PhotoID)
			if err := pp.Photos.MarkPreviewProcessing(job.PhotoID); err != nil {
				log.Printf("Worker %d: ERROR marking preview processing for photo %d: %v. Skipping job.", id, job.PhotoID, err)
				pp.clearPending(job.PhotoID)
				continue
			}

			pp.processPreviewTask(job)
			pp.clearPending(job.PhotoID)

		case <-pp.StopChan:
			log.Printf("Photo worker %d stopping: Stop signal received", id)
			return
		}
	}
}

// processPreviewTask renders the preview, reads dimensions and capture time,
// and records the result
func (pp *PhotoProcessor) processPreviewTask(job PhotoJob) {
	var taskErr error
	var previewPathPtr *string
	var meta *media.PhotoMeta

	previewPath, genErr := pp.Processor.GeneratePreview(job.StoredPath, pp.Config.PreviewMaxSize)
	if genErr != nil {
		taskErr = fmt.Errorf("preview generation failed: %w", genErr)
		log.Printf("Worker: ERROR %v", taskErr)
	} else {
		previewPathPtr = &previewPath
	}

	if fullPath, pathErr := pp.Processor.StoreFullPath(job.StoredPath); pathErr == nil {
		var metaErr error
		meta, metaErr = media.GetPhotoMeta(fullPath)
		if metaErr != nil {
			log.Printf("Worker: ERROR extracting photo metadata for %s: %v", job.StoredPath, metaErr)
			if taskErr == nil {
				taskErr = metaErr
			}
		}
	} else {
		log.Printf("Worker: ERROR resolving stored path %s: %v", job.StoredPath, pathErr)
		if taskErr == nil {
			taskErr = pathErr
		}
	}

	if dbErr := pp.Photos.UpdatePreviewResult(job.PhotoID, previewPathPtr, meta, taskErr); dbErr != nil {
		log.Printf("Worker: ERROR updating preview result for photo %d: %v", job.PhotoID, dbErr)
	}

	status := database.StatusDone
	errMsg := ""
	if taskErr != nil {
		status = database.StatusError
		errMsg = taskErr.Error()
	}
	pp.Hub.Broadcast(realtime.Event{
		Type:      realtime.EventPhotoPreview,
		PhotoID:   job.PhotoID,
		Status:    status,
		Error:     errMsg,
		Timestamp: time.Now().Unix(),
	})
}

func (pp *PhotoProcessor) clearPending(photoID uint) {
	pp.Mutex.Lock()
	delete(pp.Pending, photoID)
	pp.Mutex.Unlock()
}

// QueueJob queues a preview task if one is not already pending for the photo
func (pp *PhotoProcessor) QueueJob(job PhotoJob) bool {
	pp.Mutex.Lock()
	if pp.Pending[job.PhotoID] {
		pp.Mutex.Unlock()
		return false
	}
	pp.Pending[job.PhotoID] = true
	pp.Mutex.Unlock()

	select {
	case pp.JobQueue <- job:
		log.Printf("Queued preview task for photo %d", job.PhotoID)
		return true
	default:
		log.Printf("WARNING: Photo processing job queue full. Failed to queue preview for photo %d", job.PhotoID)
		pp.clearPending(job.PhotoID)
		return false
	}
}

func (pp *PhotoProcessor) Stop() {
	log.Println("Stopping photo processor workers...")
	close(pp.StopChan)
	pp.Wg.Wait()
	log.Println("All photo processor workers stopped")
}
