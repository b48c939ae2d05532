package ingest

import (
	"context"
	"log"
	"time"

	"cine-trivia/notifier"
	"cine-trivia/storage"
)

// PipelineJob runs the two phases in their required order: discovery
// populates the catalog that enrichment consumes as its work queue.
type PipelineJob struct {
	discovery     *CatalogImportJob
	enrichment    *EnrichmentJob
	store         *storage.SQLiteStorage
	emailNotifier *notifier.EmailNotifier
	sendEmails    bool
}

// NewPipelineJob creates the combined import job. Email notifications are
// enabled only when SMTP configuration is present in the environment.
func NewPipelineJob(discovery *CatalogImportJob, enrichment *EnrichmentJob, store *storage.SQLiteStorage) *PipelineJob {
	emailConfig := notifier.GetEmailConfigFromEnv()
	var emailNotifier *notifier.EmailNotifier
	sendEmails := false

	if emailConfig.SMTPHost != "" && emailConfig.RecipientEmail != "" {
		var err error
		emailNotifier, err = notifier.NewEmailNotifier(emailConfig)
		if err != nil {
			log.Printf("Failed to create email notifier: %v", err)
		} else {
			sendEmails = true
			log.Printf("Run summaries will be emailed to: %s", emailConfig.RecipientEmail)
		}
	} else {
		log.Println("Email notifications disabled: missing configuration")
	}

	return &PipelineJob{
		discovery:     discovery,
		enrichment:    enrichment,
		store:         store,
		emailNotifier: emailNotifier,
		sendEmails:    sendEmails,
	}
}

// Name returns the name of the job.
func (j *PipelineJob) Name() string {
	return "catalog_pipeline"
}

// Run executes discovery then enrichment and emails a run summary.
func (j *PipelineJob) Run(ctx context.Context) error {
	start := time.Now()

	if err := j.discovery.Run(ctx); err != nil {
		return err
	}
	if err := j.enrichment.Run(ctx); err != nil {
		return err
	}

	duration := time.Since(start)
	log.Printf("Catalog pipeline complete in %s", duration)

	stats, err := j.store.GetStats()
	if err != nil {
		log.Printf("Error getting database stats: %v", err)
		return nil
	}

	if j.sendEmails && j.emailNotifier != nil {
		if err := j.emailNotifier.NotifyRunComplete(stats, duration); err != nil {
			log.Printf("Failed to send run summary email: %v", err)
		}
	}
	return nil
}
