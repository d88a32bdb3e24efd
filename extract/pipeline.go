package extract

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"smart-extract/config"
	"smart-extract/gcs"
	"smart-extract/history"
	"smart-extract/logging"
	"smart-extract/notify"
	"smart-extract/smartrecruiters"
	"smart-extract/utils"
)

// Statuts de génération renvoyés par l'API reporting
const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
)

// Statuts d'un run dans l'historique
const (
	RunComplete = "complete"
	RunError    = "error"
)

// Uploader : ce dont le pipeline a besoin côté stockage objet (gcs.Uploader en prod)
type Uploader interface {
	UploadFile(ctx context.Context, localPath, object string) error
}

// Pipeline : extraction séquentielle, un rapport à la fois
type Pipeline struct {
	Client   *smartrecruiters.Client
	Uploader Uploader
	Store    *history.Store // nil si backend "none"
	Mailer   *notify.Mailer // nil si désactivé
	Cfg      *config.Config
	Logger   *logging.Logger
	Sleep    func(time.Duration) // remplaçable en test
}

func (p *Pipeline) sleep(d time.Duration) {
	if p.Sleep != nil {
		p.Sleep(d)
		return
	}
	time.Sleep(d)
}

// LatestFile renvoie l'entrée la plus récente par schedulingDate. Les dates
// sont en ISO 8601, l'ordre lexicographique suffit.
func LatestFile(files []smartrecruiters.ReportFile) (smartrecruiters.ReportFile, bool) {
	if len(files) == 0 {
		return smartrecruiters.ReportFile{}, false
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].SchedulingDate < files[j].SchedulingDate
	})
	return files[len(files)-1], true
}

// RunAll déroule le pipeline sur chaque rapport configuré, dans l'ordre.
// Une erreur après la phase de déclenchement interrompt tout le run.
func (p *Pipeline) RunAll(ctx context.Context) error {
	for _, id := range p.Cfg.SmartRecruiters.Reports {
		if err := p.RunOne(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// RunOne : déclenche, attend la fin de génération, télécharge, normalise,
// écrit en local puis téléverse vers le bucket.
func (p *Pipeline) RunOne(ctx context.Context, reportID string) error {
	p.Logger.Writef("[START] report=%s", reportID)
	started := time.Now()

	status, err := p.Client.Generate(reportID)
	if err != nil {
		var httpErr *smartrecruiters.HTTPError
		if errors.As(err, &httpErr) {
			// L'API refuse parfois le déclenchement (run déjà en cours, quota) :
			// on considère le rapport en attente et on passe au polling
			p.Logger.Writef("[TRIGGER_FAIL] report=%s %v", reportID, httpErr)
			status = StatusPending
		} else {
			p.Logger.Writef("[SKIP] report=%s trigger: %v", reportID, err)
			if p.Mailer != nil {
				subject := "SmartRecruiters Extract Error - " + reportID
				if merr := p.Mailer.Send(subject, err.Error()); merr != nil {
					p.Logger.Writef("[MAIL_FAIL] report=%s %v", reportID, merr)
				}
			}
			p.record(history.Run{
				ID:         utils.GenerateRunID(),
				ReportID:   reportID,
				Status:     RunError,
				StartedAt:  started,
				FinishedAt: time.Now(),
				Error:      err.Error(),
			})
			return nil
		}
	}
	p.Logger.Writef("[TRIGGERED] report=%s status=%s", reportID, status)

	// Polling jusqu'à COMPLETED. Pas de timeout ni de backoff : l'intervalle
	// fixe tient le rythme imposé par l'API, rien de plus.
	interval := time.Duration(p.Cfg.SmartRecruiters.PollIntervalMs) * time.Millisecond
	for status != StatusCompleted {
		files, err := p.Client.ListFiles(reportID)
		if err != nil {
			return fmt.Errorf("report %s: list files: %w", reportID, err)
		}
		// aucune entrée = génération pas encore visible, on attend
		if latest, ok := LatestFile(files); ok {
			status = latest.ReportFileStatus
		}
		p.Logger.Writef("[POLL] report=%s status=%s", reportID, status)
		if status == StatusCompleted {
			break
		}
		p.sleep(interval)
	}

	raw, err := p.Client.DownloadRecent(reportID)
	if err != nil {
		return fmt.Errorf("report %s: download: %w", reportID, err)
	}

	records, err := ParseReport(raw)
	if err != nil {
		return fmt.Errorf("report %s: %w", reportID, err)
	}

	dataDir := utils.ResolvePath(p.Cfg.Extract.DataDir)
	csvPath, err := WriteCSV(records, dataDir, reportID)
	if err != nil {
		return fmt.Errorf("report %s: write csv: %w", reportID, err)
	}
	rows := len(records) - 1
	p.Logger.Writef("[SAVED] report=%s rows=%d file=%s", reportID, rows, csvPath)

	if p.Cfg.Extract.XLSX {
		xlsPath, err := WriteXLSX(records, dataDir, reportID)
		if err != nil {
			return fmt.Errorf("report %s: write xlsx: %w", reportID, err)
		}
		p.Logger.Writef("[SAVED] report=%s file=%s", reportID, xlsPath)
	}

	object := gcs.DestinationKey(p.Cfg.GCS.Prefix, reportID, filepath.Base(csvPath))
	if err := p.Uploader.UploadFile(ctx, csvPath, object); err != nil {
		return fmt.Errorf("report %s: upload: %w", reportID, err)
	}
	p.Logger.Writef("[UPLOADED] report=%s object=%s", reportID, object)

	p.record(history.Run{
		ID:         utils.GenerateRunID(),
		ReportID:   reportID,
		Status:     RunComplete,
		Rows:       rows,
		File:       csvPath,
		Object:     object,
		StartedAt:  started,
		FinishedAt: time.Now(),
	})
	p.Logger.Writef("[COMPLETE] report=%s duration=%s", reportID, time.Since(started).Round(time.Millisecond))
	return nil
}

// record pousse le run dans l'historique si un store est branché (best effort)
func (p *Pipeline) record(run history.Run) {
	if p.Store == nil {
		return
	}
	if err := p.Store.RecordRun(run); err != nil {
		p.Logger.Writef("[HISTORY_FAIL] report=%s %v", run.ReportID, err)
	}
}
