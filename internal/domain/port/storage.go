package port

import "context"

// VideoArchive keeps a copy of accepted uploads for later inspection.
type VideoArchive interface {
	// ArchiveVideo stores the video file under the given object key.
	ArchiveVideo(ctx context.Context, objectKey string, videoPath string) error
}
