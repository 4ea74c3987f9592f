package image

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	aiplatform "cloud.google.com/go/aiplatform/apiv1"
	"cloud.google.com/go/aiplatform/apiv1/aiplatformpb"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/types/known/structpb"

	"homedesignai/internal/chain"
	"homedesignai/internal/design"
	"homedesignai/internal/media"
	"homedesignai/internal/prompts"
)

// VertexImagenConfig describes how to connect to Vertex AI Imagen.
type VertexImagenConfig struct {
	ProjectID          string
	Location           string
	Model              string
	APIKey             string
	ServiceAccount     string
	ServiceAccountJSON string
}

// VertexImagen renders interiors using Vertex AI Imagen text-to-image
// predictions and uploads the result through the media uploader.
type VertexImagen struct {
	projectID          string
	location           string
	model              string
	apiKey             string
	serviceAccount     string
	serviceAccountJSON string
	uploader           media.Uploader
}

// NewVertexImagen wires a VertexImagen client.
func NewVertexImagen(cfg VertexImagenConfig, uploader media.Uploader) *VertexImagen {
	return &VertexImagen{
		projectID:          strings.TrimSpace(cfg.ProjectID),
		location:           strings.TrimSpace(cfg.Location),
		model:              strings.TrimSpace(cfg.Model),
		apiKey:             strings.TrimSpace(cfg.APIKey),
		serviceAccount:     strings.TrimSpace(cfg.ServiceAccount),
		serviceAccountJSON: strings.TrimSpace(cfg.ServiceAccountJSON),
		uploader:           uploader,
	}
}

// Name identifies the provider in chain diagnostics.
func (v *VertexImagen) Name() string { return "imagen" }

// Invoke runs an Imagen prediction for the request's image prompt and uploads
// the rendered bytes.
func (v *VertexImagen) Invoke(ctx context.Context, req design.Request) (Reference, error) {
	if v.uploader == nil {
		return Reference{}, chain.Rejected(fmt.Errorf("imagen: no media uploader configured"))
	}
	if v.projectID == "" || v.location == "" || v.model == "" {
		return Reference{}, chain.Rejected(fmt.Errorf("imagen: missing project/location/model"))
	}

	instance, err := structpb.NewValue(map[string]any{
		"prompt": prompts.BuildImagePrompt(req),
	})
	if err != nil {
		return Reference{}, err
	}

	params, err := structpb.NewValue(map[string]any{
		"sampleCount": 1,
		"aspectRatio": "1:1",
	})
	if err != nil {
		return Reference{}, err
	}

	endpoint := fmt.Sprintf("projects/%s/locations/%s/publishers/google/models/%s", v.projectID, v.location, v.model)
	options := []option.ClientOption{option.WithEndpoint(fmt.Sprintf("%s-aiplatform.googleapis.com:443", v.location))}
	if v.serviceAccountJSON != "" {
		options = append(options, option.WithCredentialsJSON([]byte(v.serviceAccountJSON)))
	} else if v.serviceAccount != "" {
		options = append(options, option.WithCredentialsFile(v.serviceAccount))
	} else if v.apiKey != "" {
		options = append(options, option.WithAPIKey(v.apiKey))
	}

	client, err := aiplatform.NewPredictionClient(ctx, options...)
	if err != nil {
		return Reference{}, fmt.Errorf("imagen: prediction client: %w", err)
	}
	defer client.Close()

	resp, err := client.Predict(ctx, &aiplatformpb.PredictRequest{
		Endpoint:   endpoint,
		Instances:  []*structpb.Value{instance},
		Parameters: params,
	})
	if err != nil {
		return Reference{}, fmt.Errorf("imagen: predict: %w", err)
	}
	if len(resp.Predictions) == 0 {
		return Reference{}, chain.Malformed(fmt.Errorf("imagen: empty prediction response"))
	}

	field := resp.Predictions[0].GetStructValue().GetFields()["bytesBase64Encoded"]
	if field == nil {
		return Reference{}, chain.Malformed(fmt.Errorf("imagen: prediction missing bytes"))
	}

	data, err := base64.StdEncoding.DecodeString(field.GetStringValue())
	if err != nil {
		return Reference{}, chain.Malformed(fmt.Errorf("imagen: decode result: %w", err))
	}

	result, err := v.uploader.Upload(ctx, media.UploadInput{
		Filename:    "imagen-render.png",
		ContentType: "image/png",
		Body:        bytes.NewReader(data),
		Size:        int64(len(data)),
	})
	if err != nil {
		return Reference{}, fmt.Errorf("imagen: upload render: %w", err)
	}
	return Reference{URL: result.URL}, nil
}
