package core

import (
	"math"

	"github.com/kinetrace/kinetrace/schema"
)

// angleJoints maps each derived angle to its three contributing
// landmarks: the angle is measured at the middle joint.
var angleJoints = map[schema.AngleName][3]schema.JointName{
	schema.LeftElbowAngle:  {schema.LeftShoulder, schema.LeftElbow, schema.LeftWrist},
	schema.RightElbowAngle: {schema.RightShoulder, schema.RightElbow, schema.RightWrist},
	schema.LeftKneeAngle:   {schema.LeftHip, schema.LeftKnee, schema.LeftAnkle},
	schema.RightKneeAngle:  {schema.RightHip, schema.RightKnee, schema.RightAnkle},
	schema.LeftHipAngle:    {schema.LeftShoulder, schema.LeftHip, schema.LeftAnkle},
	schema.RightHipAngle:   {schema.RightShoulder, schema.RightHip, schema.RightAnkle},
}

// bodyAngle derives a named joint angle from a frame's keypoints.
// The angle is undefined (Valid=false) when any contributing keypoint
// is missing or below the confidence floor.
func bodyAngle(frame schema.FrameSignal, name schema.AngleName, minConfidence float64) schema.BodyAngle {
	joints, ok := angleJoints[name]
	if !ok {
		return schema.BodyAngle{Name: name}
	}

	var pts [3]schema.Keypoint
	for i, joint := range joints {
		kp, ok := frame.Keypoints[joint]
		if !ok || kp.Confidence < minConfidence {
			return schema.BodyAngle{Name: name}
		}
		pts[i] = kp
	}

	deg := angleAt(pts[0], pts[1], pts[2])
	if math.IsNaN(deg) {
		return schema.BodyAngle{Name: name}
	}
	return schema.BodyAngle{Name: name, Degrees: deg, Valid: true}
}

// angleAt computes the angle in degrees at vertex b formed by rays
// b->a and b->c, in [0,180]. NaN if either ray has zero length.
func angleAt(a, b, c schema.Keypoint) float64 {
	v1x, v1y := a.X-b.X, a.Y-b.Y
	v2x, v2y := c.X-b.X, c.Y-b.Y

	n1 := math.Hypot(v1x, v1y)
	n2 := math.Hypot(v2x, v2y)
	if n1 == 0 || n2 == 0 {
		return math.NaN()
	}

	cos := (v1x*v2x + v1y*v2y) / (n1 * n2)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}

// trackedAngle averages the valid tracked angles for a frame.
func trackedAngle(frame schema.FrameSignal, names []schema.AngleName, minConfidence float64) schema.BodyAngle {
	var sum float64
	var n int
	for _, name := range names {
		a := bodyAngle(frame, name, minConfidence)
		if a.Valid {
			sum += a.Degrees
			n++
		}
	}
	if n == 0 {
		return schema.BodyAngle{}
	}
	return schema.BodyAngle{Degrees: sum / float64(n), Valid: true}
}

// centerOfMass estimates the body center from the hip landmarks.
// Falls back to shoulders when the hips are not usable.
func centerOfMass(frame schema.FrameSignal, minConfidence float64) (x, y float64, ok bool) {
	pairs := [][2]schema.JointName{
		{schema.LeftHip, schema.RightHip},
		{schema.LeftShoulder, schema.RightShoulder},
	}
	for _, pair := range pairs {
		l, lok := frame.Keypoints[pair[0]]
		r, rok := frame.Keypoints[pair[1]]
		if lok && rok && l.Confidence >= minConfidence && r.Confidence >= minConfidence {
			return (l.X + r.X) / 2, (l.Y + r.Y) / 2, true
		}
	}
	return 0, 0, false
}
