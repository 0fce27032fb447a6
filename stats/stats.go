// Package stats provides pure aggregation helpers over blog records.
// All functions leave their input untouched and break ties deterministically:
// the first candidate in input order wins.
package stats

// Blog is the projection the aggregations operate on.
type Blog struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Likes  uint   `json:"likes"`
}

// AuthorBlogs pairs an author with how many blogs they wrote.
type AuthorBlogs struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

// AuthorLikes pairs an author with the sum of likes across their blogs.
type AuthorLikes struct {
	Author string `json:"author"`
	Likes  uint   `json:"likes"`
}

// TotalLikes sums likes across all blogs. Empty input sums to zero.
func TotalLikes(blogs []Blog) uint {
	var sum uint
	for _, b := range blogs {
		sum += b.Likes
	}
	return sum
}

// FavoriteBlog returns the blog with the most likes. The second return value
// is false for empty input.
func FavoriteBlog(blogs []Blog) (Blog, bool) {
	if len(blogs) == 0 {
		return Blog{}, false
	}
	fav := blogs[0]
	for _, b := range blogs[1:] {
		if b.Likes > fav.Likes {
			fav = b
		}
	}
	return fav, true
}

// MostBlogs returns the author with the largest number of blogs.
func MostBlogs(blogs []Blog) (AuthorBlogs, bool) {
	if len(blogs) == 0 {
		return AuthorBlogs{}, false
	}
	counts := make(map[string]int, len(blogs))
	for _, b := range blogs {
		counts[b.Author]++
	}
	// Scan input order so equal counts resolve to the first author seen.
	top := AuthorBlogs{Author: blogs[0].Author, Blogs: counts[blogs[0].Author]}
	seen := map[string]bool{blogs[0].Author: true}
	for _, b := range blogs[1:] {
		if seen[b.Author] {
			continue
		}
		seen[b.Author] = true
		if counts[b.Author] > top.Blogs {
			top = AuthorBlogs{Author: b.Author, Blogs: counts[b.Author]}
		}
	}
	return top, true
}

// MostLikes returns the author whose blogs accumulated the most likes in total.
func MostLikes(blogs []Blog) (AuthorLikes, bool) {
	if len(blogs) == 0 {
		return AuthorLikes{}, false
	}
	sums := make(map[string]uint, len(blogs))
	for _, b := range blogs {
		sums[b.Author] += b.Likes
	}
	top := AuthorLikes{Author: blogs[0].Author, Likes: sums[blogs[0].Author]}
	seen := map[string]bool{blogs[0].Author: true}
	for _, b := range blogs[1:] {
		if seen[b.Author] {
			continue
		}
		seen[b.Author] = true
		if sums[b.Author] > top.Likes {
			top = AuthorLikes{Author: b.Author, Likes: sums[b.Author]}
		}
	}
	return top, true
}
