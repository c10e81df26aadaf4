// Package smile scores how much a detected face is smiling from raw
// landmark geometry. The estimator is deterministic and never fails:
// malformed or missing landmarks score 0.0.
package smile

import "math"

// 106-point landmark indices used by the primary path.
const (
	idxLeftMouthCorner  = 52
	idxRightMouthCorner = 61
	idxUpperLipCenter   = 57
	idxLowerLipCenter   = 66
	idxLeftEyeCenter    = 38
	idxRightEyeCenter   = 88
)

// 5-point landmark indices used by the fallback path
// (left eye, right eye, nose, left mouth, right mouth).
const (
	idx5LeftEye    = 0
	idx5RightEye   = 1
	idx5LeftMouth  = 3
	idx5RightMouth = 4
)

// Score estimates a smile confidence in [0, 1] from facial landmarks.
// 106-point landmarks use mouth shape analysis; 5-point landmarks fall
// back to a mouth-width ratio. Anything else scores 0.
func Score(landmarks [][]float64) float64 {
	switch {
	case len(landmarks) >= 106:
		return score106(landmarks)
	case len(landmarks) >= 5:
		return score5(landmarks)
	default:
		return 0
	}
}

func score106(landmarks [][]float64) float64 {
	points := []int{
		idxLeftMouthCorner, idxRightMouthCorner,
		idxUpperLipCenter, idxLowerLipCenter,
		idxLeftEyeCenter, idxRightEyeCenter,
	}
	for _, idx := range points {
		if len(landmarks[idx]) < 2 {
			return 0
		}
	}

	leftCorner := landmarks[idxLeftMouthCorner]
	rightCorner := landmarks[idxRightMouthCorner]
	upperLip := landmarks[idxUpperLipCenter]
	lowerLip := landmarks[idxLowerLipCenter]
	leftEye := landmarks[idxLeftEyeCenter]
	rightEye := landmarks[idxRightEyeCenter]

	mouthWidth := distance(leftCorner, rightCorner)
	eyeDistance := distance(leftEye, rightEye)

	// Wider mouth relative to eye spacing reads as a smile.
	widthRatio := 0.0
	if eyeDistance > 0 {
		widthRatio = mouthWidth / eyeDistance
	}
	widthScore := clip((widthRatio-0.9)*3, 0, 1)

	// Mouth corners lifted above the lip midline.
	mouthCenterY := (upperLip[1] + lowerLip[1]) / 2
	avgLift := ((mouthCenterY - leftCorner[1]) + (mouthCenterY - rightCorner[1])) / 2
	faceHeight := eyeDistance * 1.5
	liftScore := 0.0
	if faceHeight > 0 {
		liftScore = clip(avgLift/(faceHeight*0.03)+0.5, 0, 1)
	}

	// Open mouth (teeth showing) contributes, capped at half weight.
	mouthHeight := distance(upperLip, lowerLip)
	opennessRatio := 0.0
	if mouthWidth > 0 {
		opennessRatio = mouthHeight / mouthWidth
	}
	opennessScore := clip(opennessRatio*2, 0, 0.5)

	return clip(widthScore*0.4+liftScore*0.4+opennessScore*0.2, 0, 1)
}

func score5(landmarks [][]float64) float64 {
	points := []int{idx5LeftEye, idx5RightEye, idx5LeftMouth, idx5RightMouth}
	for _, idx := range points {
		if len(landmarks[idx]) < 2 {
			return 0
		}
	}

	faceWidth := distance(landmarks[idx5LeftEye], landmarks[idx5RightEye])
	mouthWidth := distance(landmarks[idx5LeftMouth], landmarks[idx5RightMouth])

	widthRatio := 0.0
	if faceWidth > 0 {
		widthRatio = mouthWidth / faceWidth
	}
	return clip((widthRatio-0.4)*2, 0, 1)
}

func distance(a, b []float64) float64 {
	return math.Hypot(b[0]-a[0], b[1]-a[1])
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
