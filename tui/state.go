package tui

type state int

const (
	loadingState state = iota
	feedState
	emptyState
	indexState
)
