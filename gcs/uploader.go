package gcs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// Uploader pousse les fichiers extraits vers un bucket GCS
type Uploader struct {
	client *storage.Client
	bucket string
}

// NewUploader crée le client GCS. credentialsFile vide = Application Default
// Credentials (cas cron sur une VM GCP).
func NewUploader(ctx context.Context, bucket, credentialsFile string) (*Uploader, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithAuthCredentialsFile(option.ServiceAccount, credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create GCS client: %w", err)
	}
	return &Uploader{client: client, bucket: bucket}, nil
}

// DestinationKey construit la clé objet : prefix/reportID/filename
func DestinationKey(prefix, reportID, filename string) string {
	return path.Join(prefix, reportID, filename)
}

// UploadFile téléverse un fichier local vers object (écrase l'objet existant)
func (u *Uploader) UploadFile(ctx context.Context, localPath, object string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := u.client.Bucket(u.bucket).Object(object).NewWriter(ctx)
	w.ContentType = "text/csv"
	if _, err := io.Copy(w, f); err != nil {
		w.Close()
		return fmt.Errorf("upload %q: %w", object, err)
	}
	return w.Close()
}

func (u *Uploader) Bucket() string {
	return u.bucket
}

func (u *Uploader) Close() error {
	return u.client.Close()
}
