// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pose

import "fmt"

// LandmarkCount is the number of body landmarks the pose model reports.
const LandmarkCount = 33

// landmarkNames maps landmark index to its canonical body-part name. The
// order is fixed by the model; it never changes at runtime.
var landmarkNames = [LandmarkCount]string{
	"NOSE", "LEFT_EYE_INNER", "LEFT_EYE", "LEFT_EYE_OUTER",
	"RIGHT_EYE_INNER", "RIGHT_EYE", "RIGHT_EYE_OUTER",
	"LEFT_EAR", "RIGHT_EAR", "MOUTH_LEFT", "MOUTH_RIGHT",
	"LEFT_SHOULDER", "RIGHT_SHOULDER", "LEFT_ELBOW", "RIGHT_ELBOW",
	"LEFT_WRIST", "RIGHT_WRIST", "LEFT_PINKY", "RIGHT_PINKY",
	"LEFT_INDEX", "RIGHT_INDEX", "LEFT_THUMB", "RIGHT_THUMB",
	"LEFT_HIP", "RIGHT_HIP", "LEFT_KNEE", "RIGHT_KNEE",
	"LEFT_ANKLE", "RIGHT_ANKLE", "LEFT_HEEL", "RIGHT_HEEL",
	"LEFT_FOOT_INDEX", "RIGHT_FOOT_INDEX",
}

// LandmarkName returns the canonical name for a landmark index, or a
// generated placeholder for indexes beyond the known table.
func LandmarkName(idx int) string {
	if idx >= 0 && idx < LandmarkCount {
		return landmarkNames[idx]
	}
	return fmt.Sprintf("LANDMARK_%d", idx)
}
