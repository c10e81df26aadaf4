// Package crop plans aspect-ratio crop windows around the frame's
// subject. The subject center comes from detected faces when present,
// else from the saliency-mask subject box supplied by the external
// segmentation collaborator, else the frame center. Crops never exceed
// the source bounds.
package crop

import (
	"framepick/internal/frames"
)

// AspectRatio names a target crop shape.
type AspectRatio struct {
	Label  string
	Width  int
	Height int
}

// DefaultAspectRatios covers the common delivery formats.
func DefaultAspectRatios() []AspectRatio {
	return []AspectRatio{
		{Label: "9:16", Width: 9, Height: 16},
		{Label: "1:1", Width: 1, Height: 1},
		{Label: "16:9", Width: 16, Height: 9},
		{Label: "4:5", Width: 4, Height: 5},
	}
}

// SubjectBox is an optional salient-subject bounding box from the
// external segmentation step.
type SubjectBox struct {
	X1, Y1, X2, Y2 int
}

// Plan computes one crop per aspect ratio, centered on the subject and
// clamped inside the image.
func Plan(imageWidth, imageHeight int, faces []frames.Face, subject *SubjectBox, ratios []AspectRatio) map[string]frames.CropRect {
	if imageWidth <= 0 || imageHeight <= 0 || len(ratios) == 0 {
		return nil
	}

	centerX, centerY := subjectCenter(imageWidth, imageHeight, faces, subject)

	crops := make(map[string]frames.CropRect, len(ratios))
	for _, ratio := range ratios {
		if ratio.Width <= 0 || ratio.Height <= 0 {
			continue
		}
		target := float64(ratio.Width) / float64(ratio.Height)
		imgRatio := float64(imageWidth) / float64(imageHeight)

		var cropWidth, cropHeight int
		if target > imgRatio {
			cropWidth = imageWidth
			cropHeight = int(float64(imageWidth) / target)
		} else {
			cropHeight = imageHeight
			cropWidth = int(float64(imageHeight) * target)
		}

		x1 := clampInt(centerX-cropWidth/2, 0, imageWidth-cropWidth)
		y1 := clampInt(centerY-cropHeight/2, 0, imageHeight-cropHeight)

		crops[ratio.Label] = frames.CropRect{
			X1:     x1,
			Y1:     y1,
			X2:     x1 + cropWidth,
			Y2:     y1 + cropHeight,
			Width:  cropWidth,
			Height: cropHeight,
		}
	}
	return crops
}

func subjectCenter(imageWidth, imageHeight int, faces []frames.Face, subject *SubjectBox) (int, int) {
	sumX, sumY := 0.0, 0.0
	count := 0
	for _, f := range faces {
		if f.Area() <= 0 {
			continue
		}
		x, y := f.Center()
		sumX += x
		sumY += y
		count++
	}
	if count > 0 {
		return int(sumX / float64(count)), int(sumY / float64(count))
	}
	if subject != nil {
		return (subject.X1 + subject.X2) / 2, (subject.Y1 + subject.Y2) / 2
	}
	return imageWidth / 2, imageHeight / 2
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
