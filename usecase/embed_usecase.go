package usecase

import (
	"context"
	"errors"

	"flickr-embed/domain/model"
	"flickr-embed/infrastructure/logger"
	"flickr-embed/infrastructure/metrics"
)

// IEmbedUsecase renders <flickr> tag bodies.
type IEmbedUsecase interface {
	// Embed returns the markup for body, or an *model.EmbedError.
	Embed(ctx context.Context, body string, dir model.TextDirection) (string, error)
	// Render is Embed with failures turned into the inline error element.
	Render(ctx context.Context, body string, dir model.TextDirection) string
}

// IMarkupRenderer turns a merged request and chosen image into markup.
type IMarkupRenderer interface {
	Render(req model.EmbedRequest, img *model.ResolvedImage, dir model.TextDirection) string
	RenderError(message string) string
}

// EmbedConfig is the deployment configuration the pipeline needs.
type EmbedConfig struct {
	APIKey   string
	Defaults model.EmbedDefaults
}

type EmbedUsecase struct {
	cfg      EmbedConfig
	fetcher  IMetadataFetcher
	renderer IMarkupRenderer
}

func NewEmbedUsecase(cfg EmbedConfig, fetcher IMetadataFetcher, renderer IMarkupRenderer) IEmbedUsecase {
	return &EmbedUsecase{cfg: cfg, fetcher: fetcher, renderer: renderer}
}

func (u *EmbedUsecase) Render(ctx context.Context, body string, dir model.TextDirection) string {
	out, err := u.Embed(ctx, body, dir)
	if err == nil {
		return out
	}

	var embedErr *model.EmbedError
	if !errors.As(err, &embedErr) {
		embedErr = model.NewNotFoundError(ParseOptions(body).ID, err)
	}
	logger.GetLogger().WithFields(map[string]interface{}{
		"kind":  embedErr.Kind,
		"error": err,
	}).Info("Flickr embed failed")
	return u.renderer.RenderError(embedErr.Message)
}

func (u *EmbedUsecase) Embed(ctx context.Context, body string, dir model.TextDirection) (string, error) {
	req := ParseOptions(body)

	if u.cfg.APIKey == "" {
		return u.fail(req, model.NewConfigError())
	}
	if req.ID == "" {
		return u.fail(req, model.NewMissingIDError())
	}
	if !isNumericID(req.ID) {
		return u.fail(req, model.NewInvalidIDError())
	}

	meta, err := u.fetcher.Fetch(ctx, req.ID)
	if err != nil {
		if _, ok := model.KindOf(err); !ok {
			err = model.NewNotFoundError(req.ID, err)
		}
		return u.fail(req, err)
	}
	if meta == nil || len(meta.Sizes) == 0 {
		return u.fail(req, model.NewNotFoundError(req.ID, nil))
	}

	merged := ApplyDefaults(req, meta, u.cfg.Defaults)
	img, err := ResolveSize(merged.Size, meta.Sizes)
	if err != nil {
		return u.fail(merged, err)
	}
	img.LinkURL = meta.LinkURL

	metrics.Renders.WithLabelValues(string(merged.Type), "ok").Inc()
	return u.renderer.Render(merged, img, dir), nil
}

func (u *EmbedUsecase) fail(req model.EmbedRequest, err error) (string, error) {
	kind, _ := model.KindOf(err)
	metrics.Renders.WithLabelValues(string(req.Type), string(kind)).Inc()
	return "", err
}

func isNumericID(id string) bool {
	if id == "" {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return false
		}
	}
	return true
}
