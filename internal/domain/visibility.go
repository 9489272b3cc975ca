package domain

import "time"

// ChainLink is one entity in an active-flag chain, ordered from the entity itself to its root.
type ChainLink struct {
	Entity string
	Active bool
}

type PublicationChain struct {
	PublicationActive bool `db:"publication_active"`
	ForumTopicActive  bool `db:"forum_topic_active"`
	TopicActive       bool `db:"topic_active"`
	AreaActive        bool `db:"area_active"`
	CategoryActive    bool `db:"category_active"`
}

func (c PublicationChain) Links() []ChainLink {
	return []ChainLink{
		{Entity: "publicacao", Active: c.PublicationActive},
		{Entity: "topico_forum", Active: c.ForumTopicActive},
		{Entity: "topico", Active: c.TopicActive},
		{Entity: "area", Active: c.AreaActive},
		{Entity: "categoria", Active: c.CategoryActive},
	}
}

type ForumTopicChain struct {
	ForumTopicActive bool `db:"forum_topic_active"`
	TopicActive      bool `db:"topic_active"`
	AreaActive       bool `db:"area_active"`
	CategoryActive   bool `db:"category_active"`
}

func (c ForumTopicChain) Links() []ChainLink {
	return []ChainLink{
		{Entity: "topico_forum", Active: c.ForumTopicActive},
		{Entity: "topico", Active: c.TopicActive},
		{Entity: "area", Active: c.AreaActive},
		{Entity: "categoria", Active: c.CategoryActive},
	}
}

type CourseChain struct {
	CourseActive   bool       `db:"course_active"`
	CourseVisible  bool       `db:"course_visible"`
	Kind           CourseKind `db:"kind"`
	EndDate        *time.Time `db:"end_date"`
	TopicActive    bool       `db:"topic_active"`
	AreaActive     bool       `db:"area_active"`
	CategoryActive bool       `db:"category_active"`
}

func (c CourseChain) Links() []ChainLink {
	return []ChainLink{
		{Entity: "curso", Active: c.CourseActive && c.CourseVisible},
		{Entity: "topico", Active: c.TopicActive},
		{Entity: "area", Active: c.AreaActive},
		{Entity: "categoria", Active: c.CategoryActive},
	}
}

func (c CourseChain) Expired(now time.Time) bool {
	return c.Kind == CourseAsync && c.EndDate != nil && c.EndDate.Before(now)
}
