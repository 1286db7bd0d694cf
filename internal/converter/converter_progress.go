package converter

// ProgressCallback is called during conversion to report progress
type ProgressCallback func(event ProgressEvent)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Type    ProgressEventType
	File    string
	Message string
	Index   int
	Total   int
	Error   error
}

// ProgressEventType identifies the type of progress event
type ProgressEventType int

const (
	EventClassifyStart ProgressEventType = iota
	EventClassifyComplete
	EventExtractStart
	EventExtractComplete
	EventIndexComplete
	EventAssembleStart
	EventImageMeasured
	EventAssembleComplete
	EventCopyStart
	EventImageCopied
	EventCopyComplete
	EventWriteStart
	EventWriteComplete
	EventBOMStart
	EventBOMComplete
	EventError
)

func (t ProgressEventType) String() string {
	switch t {
	case EventClassifyStart:
		return "classify-start"
	case EventClassifyComplete:
		return "classify-complete"
	case EventExtractStart:
		return "extract-start"
	case EventExtractComplete:
		return "extract-complete"
	case EventIndexComplete:
		return "index-complete"
	case EventAssembleStart:
		return "assemble-start"
	case EventImageMeasured:
		return "image-measured"
	case EventAssembleComplete:
		return "assemble-complete"
	case EventCopyStart:
		return "copy-start"
	case EventImageCopied:
		return "image-copied"
	case EventCopyComplete:
		return "copy-complete"
	case EventWriteStart:
		return "write-start"
	case EventWriteComplete:
		return "write-complete"
	case EventBOMStart:
		return "bom-start"
	case EventBOMComplete:
		return "bom-complete"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}
