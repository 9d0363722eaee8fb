package scene

import (
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-bookcase/common"
)

// tessellateBatch is the number of nodes one worker task tessellates.
const tessellateBatch = 64

// Scene is the registry of everything the viewer draws: the bookcase, helpers, viewpoint markers
// and the path preview. Nodes are addressed by the NodeID returned from Add and form a tree
// through Node.Parent; hiding a node hides its whole subtree.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Add inserts a node and returns its ID. The node's ID field is ignored.
	// A node whose parent does not exist is attached to the root.
	//
	// Parameters:
	//   - node: the node to add
	//
	// Returns:
	//   - NodeID: the assigned ID
	Add(node Node) NodeID

	// Get returns a copy of a node.
	//
	// Parameters:
	//   - id: the node ID
	//
	// Returns:
	//   - Node: the node
	//   - bool: false if no node has this ID
	Get(id NodeID) (Node, bool)

	// Update applies fn to a node in place. The node's ID and Parent cannot be changed.
	//
	// Parameters:
	//   - id: the node ID
	//   - fn: mutation applied under the scene lock
	//
	// Returns:
	//   - bool: false if no node has this ID
	Update(id NodeID, fn func(n *Node)) bool

	// Remove deletes a node and its subtree. Unknown IDs are ignored.
	//
	// Parameters:
	//   - id: the node ID
	Remove(id NodeID)

	// Children returns the IDs of the direct children of a node in insertion order. Pass 0 for root nodes.
	//
	// Parameters:
	//   - id: the parent ID
	//
	// Returns:
	//   - []NodeID: the child IDs
	Children(id NodeID) []NodeID

	// SetVisible shows or hides a node.
	//
	// Parameters:
	//   - id: the node ID
	//   - visible: the new visibility
	SetVisible(id NodeID, visible bool)

	// ToggleVisible flips a node's visibility.
	//
	// Parameters:
	//   - id: the node ID
	//
	// Returns:
	//   - bool: the new visibility, false for unknown IDs
	ToggleVisible(id NodeID) bool

	// Visible reports whether a node and all of its ancestors are visible.
	//
	// Parameters:
	//   - id: the node ID
	//
	// Returns:
	//   - bool: true if the node is drawn
	Visible(id NodeID) bool

	// Count returns the number of nodes in the scene.
	//
	// Returns:
	//   - int: node count
	Count() int

	// Lines tessellates every drawn node into line-list vertices, in node insertion order.
	// Large scenes are tessellated in parallel on the scene's worker pool.
	//
	// Returns:
	//   - []common.LineVertex: vertex pairs, one pair per segment
	Lines() []common.LineVertex

	// VisibleLines is Lines restricted to nodes whose bounds intersect the frustum.
	//
	// Parameters:
	//   - frustum: the camera frustum
	//
	// Returns:
	//   - []common.LineVertex: vertex pairs, one pair per segment
	VisibleLines(frustum common.Frustum) []common.LineVertex

	// Clear removes every node.
	Clear()

	// AttachMarkers adds the marker group of a viewpoint: a sphere at position, a cube at target and a
	// line between them.
	//
	// Parameters:
	//   - name: group name
	//   - position: viewpoint camera position
	//   - target: viewpoint look target
	//   - active: whether to use the active marker color
	//
	// Returns:
	//   - NodeID: the marker group
	AttachMarkers(name string, position, target common.Point3, active bool) NodeID

	// UpdateMarkers moves the sphere, cube and connecting line of a marker group.
	//
	// Parameters:
	//   - id: the marker group
	//   - position: new camera position
	//   - target: new look target
	UpdateMarkers(id NodeID, position, target common.Point3)

	// SetMarkersActive switches a marker group between the active and default colors.
	//
	// Parameters:
	//   - id: the marker group
	//   - active: true for the active color
	SetMarkersActive(id NodeID, active bool)

	// DetachMarkers removes a marker group.
	//
	// Parameters:
	//   - id: the marker group
	DetachMarkers(id NodeID)

	// SetMarkerParent sets the node new marker groups are attached under. Hiding that node hides every marker.
	//
	// Parameters:
	//   - id: the parent node, 0 for the root
	SetMarkerParent(id NodeID)
}

type scene struct {
	mu *sync.RWMutex

	name   string
	nodes  map[NodeID]*Node
	order  []NodeID
	nextID NodeID

	markers      map[NodeID]markerParts
	markerParent NodeID

	// tessellation work is fanned out to a bounded set of reusable goroutines
	computePool    worker.DynamicWorkerPool
	computeWorkers int
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates an empty Scene.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:             &sync.RWMutex{},
		name:           name,
		nodes:          make(map[NodeID]*Node),
		nextID:         1,
		markers:        make(map[NodeID]markerParts),
		computeWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	// Initialize the compute pool after options so WithComputeWorkers can override the default.
	s.computePool = worker.NewDynamicWorkerPool(s.computeWorkers, 256, 1*time.Second)
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Add(node Node) NodeID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(node)
}

// add inserts a node. Caller must hold the write lock.
func (s *scene) add(node Node) NodeID {
	node.ID = s.nextID
	s.nextID++
	if _, ok := s.nodes[node.Parent]; !ok {
		node.Parent = 0
	}
	node.Points = slices.Clone(node.Points)
	s.nodes[node.ID] = &node
	s.order = append(s.order, node.ID)
	return node.ID
}

func (s *scene) Get(id NodeID) (Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.nodes[id]
	if !ok {
		return Node{}, false
	}
	out := *n
	out.Points = slices.Clone(n.Points)
	return out, true
}

func (s *scene) Update(id NodeID, fn func(n *Node)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.nodes[id]
	if !ok {
		return false
	}
	parent := n.Parent
	fn(n)
	n.ID = id
	n.Parent = parent
	return true
}

func (s *scene) Remove(id NodeID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(id)
}

// remove deletes a node and its descendants. Caller must hold the write lock.
func (s *scene) remove(id NodeID) {
	if _, ok := s.nodes[id]; !ok {
		return
	}
	doomed := map[NodeID]bool{id: true}
	// order is parent-before-child, so one forward pass collects the whole subtree
	for _, nid := range s.order {
		if doomed[s.nodes[nid].Parent] {
			doomed[nid] = true
		}
	}
	kept := s.order[:0]
	for _, nid := range s.order {
		if doomed[nid] {
			delete(s.nodes, nid)
			delete(s.markers, nid)
			continue
		}
		kept = append(kept, nid)
	}
	s.order = kept
}

func (s *scene) Children(id NodeID) []NodeID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []NodeID
	for _, nid := range s.order {
		if s.nodes[nid].Parent == id {
			out = append(out, nid)
		}
	}
	return out
}

func (s *scene) SetVisible(id NodeID, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n, ok := s.nodes[id]; ok {
		n.Visible = visible
	}
}

func (s *scene) ToggleVisible(id NodeID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.nodes[id]
	if !ok {
		return false
	}
	n.Visible = !n.Visible
	return n.Visible
}

func (s *scene) Visible(id NodeID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.drawn(id)
}

// drawn walks up the parent chain. Caller must hold the lock.
func (s *scene) drawn(id NodeID) bool {
	for id != 0 {
		n, ok := s.nodes[id]
		if !ok || !n.Visible {
			return false
		}
		id = n.Parent
	}
	return true
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

func (s *scene) Lines() []common.LineVertex {
	return s.tessellate(nil)
}

func (s *scene) VisibleLines(frustum common.Frustum) []common.LineVertex {
	return s.tessellate(func(n *Node) bool {
		return frustum.IntersectsBounds(n.Bounds())
	})
}

// tessellate builds the line list of every drawn node accepted by keep (nil keeps all).
func (s *scene) tessellate(keep func(n *Node) bool) []common.LineVertex {
	s.mu.RLock()
	defer s.mu.RUnlock()

	visible := make([]*Node, 0, len(s.order))
	for _, nid := range s.order {
		if !s.drawn(nid) {
			continue
		}
		n := s.nodes[nid]
		if n.Kind == KindGroup || (keep != nil && !keep(n)) {
			continue
		}
		visible = append(visible, n)
	}
	if len(visible) <= tessellateBatch {
		var out []common.LineVertex
		for _, n := range visible {
			out = n.appendLines(out)
		}
		return out
	}

	// Fan batches out to the compute pool. A WaitGroup provides the barrier since pool.Wait()
	// blocks until workers idle-exit.
	batches := make([][]common.LineVertex, (len(visible)+tessellateBatch-1)/tessellateBatch)
	var wg sync.WaitGroup
	for b := range batches {
		lo := b * tessellateBatch
		hi := min(lo+tessellateBatch, len(visible))
		wg.Add(1)
		s.computePool.SubmitTask(worker.Task{
			ID: b,
			Do: func() (any, error) {
				defer wg.Done()
				var out []common.LineVertex
				for _, n := range visible[lo:hi] {
					out = n.appendLines(out)
				}
				batches[b] = out
				return nil, nil
			},
		})
	}
	wg.Wait()

	total := 0
	for _, b := range batches {
		total += len(b)
	}
	out := make([]common.LineVertex, 0, total)
	for _, b := range batches {
		out = append(out, b...)
	}
	return out
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = make(map[NodeID]*Node)
	s.markers = make(map[NodeID]markerParts)
	s.order = nil
}
