// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CatalogMediaLikesTable represents the 'catalog.media_likes' table
type CatalogMediaLikesTable struct {
	Table     string
	MediaID   string
	Likes     string
	UpdatedAt string
}

// CatalogMediaLikes is the schema definition for catalog.media_likes
var CatalogMediaLikes = CatalogMediaLikesTable{
	Table:     "catalog.media_likes",
	MediaID:   "media_id",
	Likes:     "likes",
	UpdatedAt: "updated_at",
}

func (t CatalogMediaLikesTable) Columns() []string {
	return []string{t.MediaID, t.Likes, t.UpdatedAt}
}
