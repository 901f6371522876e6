package canvas

// typeInfo describes hit-test and gesture eligibility flags for a NodeType.
// The minimum testable set is {image, text, groupbox}; video and shape are
// permitted extensions that change nothing in the state machine. Video reuses
// the image row; shape reuses it without isMediaResource.
type typeInfo struct {
	// hasTitleBar means the node exposes a title-bar drag handle
	// (groupbox-drag entry in the state machine) and a title visible above
	// the LOD thumbnail threshold.
	hasTitleBar bool
	// isMediaResource means the node's properties carry a content hash the
	// resource cache and render pipeline's load/unload hooks key on.
	isMediaResource bool
	// enforcesAspect means uniform resize (the default mode) preserves the
	// node's aspectRatio.
	enforcesAspect bool
	// participatesInAutoAlign means the node is eligible to be a member of
	// an auto-align or grid-align selection. All registered types do today;
	// the flag exists so a future type (e.g. a fixed annotation) can opt
	// out without touching the align engines.
	participatesInAutoAlign bool
}

// registry maps each known NodeType to its behavior flags. It is a plain
// package-level map, not a mutable registration API: the node types a
// canvas understands are a closed set decided at compile time, per the
// source's two diverging type lists resolved into one registry here.
var registry = map[NodeType]typeInfo{
	NodeImage: {
		isMediaResource:          true,
		enforcesAspect:           true,
		participatesInAutoAlign:  true,
	},
	NodeVideo: {
		isMediaResource:          true,
		enforcesAspect:           true,
		participatesInAutoAlign:  true,
	},
	NodeText: {
		enforcesAspect:           false,
		participatesInAutoAlign:  true,
	},
	NodeShape: {
		enforcesAspect:           true,
		participatesInAutoAlign:  true,
	},
	NodeGroupBox: {
		hasTitleBar:              true,
		enforcesAspect:           false,
		participatesInAutoAlign:  true,
	},
}

// typeInfoFor returns the registry row for t, or the zero value (no
// title bar, no aspect enforcement, not a media resource, not align-
// eligible) if t is unregistered — callers skip such nodes rather than
// failing the operation, per the unknown-node-type error taxonomy.
func typeInfoFor(t NodeType) typeInfo {
	if info, ok := registry[t]; ok {
		return info
	}
	return typeInfo{}
}

// isKnownType reports whether t has a registry entry.
func isKnownType(t NodeType) bool {
	_, ok := registry[t]
	return ok
}
