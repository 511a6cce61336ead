package models

// Clone returns a deep copy of the project. Nil collections stay nil so that
// schema migration can still tell a missing field from an empty one.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}

	c := *p
	c.Ideas = cloneSlice(p.Ideas, cloneIdea)
	c.Scenes = cloneSlice(p.Scenes, cloneScene)
	c.Assets = cloneSlice(p.Assets, nil)
	c.Todos = cloneSlice(p.Todos, cloneTodo)
	c.RepurposingClips = cloneSlice(p.RepurposingClips, func(cl RepurposingClip) RepurposingClip {
		cl.Platforms = cloneSlice(cl.Platforms, nil)
		return cl
	})
	c.ShotList = cloneSlice(p.ShotList, nil)
	c.Metadata = VideoMetadata{
		Titles:         cloneSlice(p.Metadata.Titles, nil),
		Thumbnails:     cloneSlice(p.Metadata.Thumbnails, nil),
		Tags:           cloneSlice(p.Metadata.Tags, nil),
		Notes:          p.Metadata.Notes,
		ABTestVariants: cloneSlice(p.Metadata.ABTestVariants, nil),
	}
	return &c
}

func cloneIdea(i Idea) Idea {
	if i.Position != nil {
		pos := *i.Position
		i.Position = &pos
	}
	if i.Order != nil {
		order := *i.Order
		i.Order = &order
	}
	return i
}

func cloneScene(s Scene) Scene {
	s.Ideas = cloneSlice(s.Ideas, nil)
	s.Assets = cloneSlice(s.Assets, nil)
	s.Todos = cloneSlice(s.Todos, nil)
	s.Timeline = cloneSlice(s.Timeline, cloneSection)
	s.TimelineItems = cloneSlice(s.TimelineItems, nil)
	if s.Duration != nil {
		d := *s.Duration
		s.Duration = &d
	}
	return s
}

func cloneSection(s TimelineSection) TimelineSection {
	s.RepurposingClips = cloneSlice(s.RepurposingClips, nil)
	if s.WordCount != nil {
		wc := *s.WordCount
		s.WordCount = &wc
	}
	if s.EstimatedDuration != nil {
		est := *s.EstimatedDuration
		s.EstimatedDuration = &est
	}
	return s
}

func cloneTodo(t Todo) Todo {
	t.Subtasks = cloneSlice(t.Subtasks, nil)
	if t.DueDate != nil {
		due := *t.DueDate
		t.DueDate = &due
	}
	return t
}

func cloneSlice[T any](in []T, fn func(T) T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, v := range in {
		if fn != nil {
			v = fn(v)
		}
		out[i] = v
	}
	return out
}
