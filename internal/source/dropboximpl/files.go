package dropboximpl

import (
	"context"
	"fmt"
	"time"

	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/files"
	"github.com/orgball2608/reel-publisher-bot/internal/domain"
	"github.com/orgball2608/reel-publisher-bot/internal/source"
	"github.com/orgball2608/reel-publisher-bot/pkg/errors"
)

func (d *DropboxImpl) ListCandidates(_ context.Context, folder string) []domain.MediaCandidate {
	client, err := d.api()
	if err != nil {
		source.ReportListError(d.logger, d.notifier, "dropbox", folder, err)
		return nil
	}

	res, err := client.ListFolder(files.NewListFolderArg(folder))
	if err != nil {
		source.ReportListError(d.logger, d.notifier, "dropbox", folder, err)
		return nil
	}

	var candidates []domain.MediaCandidate
	for {
		for _, entry := range res.Entries {
			file, ok := entry.(*files.FileMetadata)
			if !ok {
				continue
			}
			if c, ok := source.Candidate(file.Name, file.PathLower, int64(file.Size)); ok {
				candidates = append(candidates, c)
			}
		}
		if !res.HasMore {
			break
		}
		res, err = client.ListFolderContinue(files.NewListFolderContinueArg(res.Cursor))
		if err != nil {
			// Keep what was listed so far.
			d.logger.Warn("Listing continuation failed", "folder", folder, "error", err)
			break
		}
	}

	d.logger.Info("Listed folder", "folder", folder, "candidates", len(candidates))
	return candidates
}

func (d *DropboxImpl) TemporaryLink(_ context.Context, candidate domain.MediaCandidate) (string, error) {
	client, err := d.api()
	if err != nil {
		return "", err
	}
	res, err := client.GetTemporaryLink(files.NewGetTemporaryLinkArg(candidate.Location))
	if err != nil {
		return "", fmt.Errorf("dropbox temporary link for %s: %w", candidate.Name, err)
	}
	return res.Link, nil
}

func (d *DropboxImpl) Metadata(_ context.Context, candidate domain.MediaCandidate) (*domain.MediaMetadata, error) {
	client, err := d.api()
	if err != nil {
		return nil, err
	}

	arg := files.NewGetMetadataArg(candidate.Location)
	arg.IncludeMediaInfo = true
	res, err := client.GetMetadata(arg)
	if err != nil {
		return nil, fmt.Errorf("dropbox metadata for %s: %w", candidate.Name, err)
	}

	file, ok := res.(*files.FileMetadata)
	if !ok || file.MediaInfo == nil || file.MediaInfo.Tag != files.MediaInfoMetadata {
		return nil, nil
	}
	video, ok := file.MediaInfo.Metadata.(*files.VideoMetadata)
	if !ok || video.Dimensions == nil {
		return nil, nil
	}
	return &domain.MediaMetadata{
		Width:    int(video.Dimensions.Width),
		Height:   int(video.Dimensions.Height),
		Duration: time.Duration(video.Duration) * time.Millisecond,
	}, nil
}

func (d *DropboxImpl) Delete(_ context.Context, candidate domain.MediaCandidate) error {
	client, err := d.api()
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrDelete, err)
	}
	if _, err := client.DeleteV2(files.NewDeleteArg(candidate.Location)); err != nil {
		return fmt.Errorf("%w: dropbox delete %s: %v", errors.ErrDelete, candidate.Name, err)
	}
	d.logger.Info("Deleted file", "name", candidate.Name)
	return nil
}
