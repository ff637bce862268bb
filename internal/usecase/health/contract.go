package health

// SnapshotLener reports the size of a loaded snapshot (corpus, catalog,
// index). An empty snapshot means the component is not ready to serve.
type SnapshotLener interface {
	Len() int
}
