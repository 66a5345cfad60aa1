package client

import (
	"context"

	"github.com/menta2k/mfit/pkg/types"
)

// VisionClient is a vision model backend able to locate pose landmarks in a photo.
type VisionClient interface {
	SimpleQuery(ctx context.Context, model, prompt, imgB64 string) (string, error)
	DetectPose(ctx context.Context, model, prompt, imgB64 string) (*types.PoseResult, error)
}
