package scene

import "math"

// Scene is the single persistent scene of a viewport.
type Scene struct {
	Root       *Node
	Background Color

	Ambient []AmbientLight
	Points  []PointLight
	Spots   []SpotLight
}

func New() *Scene {
	return &Scene{Root: NewNode("Scene")}
}

func (s *Scene) Add(node *Node) {
	s.Root.Add(node)
}

func (s *Scene) Remove(node *Node) {
	s.Root.Remove(node)
}

func (s *Scene) Contains(node *Node) bool {
	for n := node; n != nil; n = n.Parent() {
		if n == s.Root {
			return true
		}
	}

	return false
}

func (s *Scene) AddAmbient(light AmbientLight) {
	s.Ambient = append(s.Ambient, light)
}

func (s *Scene) AddPoint(light PointLight) {
	s.Points = append(s.Points, light)
}

func (s *Scene) AddSpot(light SpotLight) {
	s.Spots = append(s.Spots, light)
}

func glmCos[T ~float32](r T) float32 {
	return float32(math.Cos(float64(r)))
}
