package newsportal

import (
	"context"
	"fmt"
	"strings"
	"time"
)

var (
	defaultCategories = []string{"World", "Politics", "Business", "Technology", "Sports", "Entertainment", "Health", "Science"}
	defaultAuthors    = []string{"Sarah Johnson", "Michael Chen", "Rebecca Liu", "David Wong", "Emma Roberts", "James Miller", "Sophia Patel"}
)

const defaultAuthorBio = "Experienced journalist covering various topics"

type demoArticle struct {
	title, slug, summary, content, imageURL string
	author, category                         string
	featured, breaking                       bool
	age                                      time.Duration
}

var demoArticles = []demoArticle{
	{
		title:    "World Leaders Gather for Critical Climate Summit in Geneva",
		slug:     "world-leaders-climate-summit-geneva",
		summary:  "Historic meeting aims to set ambitious targets for carbon reduction as scientists warn of point of no return",
		content:  "World leaders from over 190 countries have gathered in Geneva this week for what experts are calling the most critical climate summit in a decade...",
		imageURL: "https://images.pexels.com/photos/3184398/pexels-photo-3184398.jpeg",
		author:   "Sarah Johnson", category: "World",
		featured: true, breaking: true,
	},
	{
		title:    "Tech Giant Unveils Revolutionary AI System with Human-Like Reasoning",
		slug:     "tech-giant-ai-system-reasoning",
		summary:  "The breakthrough technology can solve complex problems and has passed sophisticated cognitive tests, raising both excitement and ethical concerns",
		content:  "In a major advancement for artificial intelligence research, tech giant DeepMind has unveiled a system that demonstrates human-like reasoning capabilities...",
		imageURL: "https://images.pexels.com/photos/5792901/pexels-photo-5792901.jpeg",
		author:   "Michael Chen", category: "Technology",
		featured: true,
		age:      5 * time.Hour,
	},
	{
		title:    "Major Trade Deal Signed Between Asian and European Nations",
		slug:     "trade-deal-asia-europe",
		summary:  "The historic agreement eliminates tariffs on thousands of products and creates the world's largest free trade zone",
		content:  "After years of negotiations, representatives from 15 Asian and European nations have signed a landmark trade agreement that analysts say will reshape global commerce...",
		imageURL: "https://images.pexels.com/photos/6615076/pexels-photo-6615076.jpeg",
		author:   "Rebecca Liu", category: "Business",
		featured: true,
		age:      12 * time.Hour,
	},
	{
		title:    "Record Transfer Fee Shatters Previous Mark in Football World",
		slug:     "record-transfer-fee-football",
		summary:  "The staggering £200 million move has sent shockwaves through the sporting world as the young superstar heads to a new club",
		content:  "The football world is reeling today after the announcement of a record-shattering transfer fee that eclipses all previous deals...",
		imageURL: "https://images.pexels.com/photos/46798/the-ball-stadion-football-the-pitch-46798.jpeg",
		author:   "David Wong", category: "Sports",
		featured: true,
		age:      24 * time.Hour,
	},
	{
		title:    "Electoral Reform Bill Faces Strong Opposition in Parliament",
		slug:     "electoral-reform-bill-opposition",
		summary:  "The controversial legislation aimed at changing voting procedures has sparked heated debates among lawmakers and civil rights groups",
		content:  "A contentious electoral reform bill introduced last month is facing mounting opposition from across the political spectrum...",
		imageURL: "https://images.pexels.com/photos/8851096/pexels-photo-8851096.jpeg",
		author:   "Michael Chen", category: "Politics",
		age:      8 * time.Hour,
	},
	{
		title:    "Cabinet Reshuffle Announced Following Minister's Resignation",
		slug:     "cabinet-reshuffle-minister-resignation",
		summary:  "The Prime Minister has announced key changes to senior government positions after the unexpected departure of the Treasury chief",
		content:  "In a surprise announcement from Downing Street today, the Prime Minister revealed a significant cabinet reshuffle following the resignation...",
		imageURL: "https://images.pexels.com/photos/4560084/pexels-photo-4560084.jpeg",
		author:   "Rebecca Liu", category: "Politics",
		age:      24 * time.Hour,
	},
	{
		title:    "Markets Tumble on Inflation Fears and Central Bank Decisions",
		slug:     "markets-tumble-inflation-central-bank",
		summary:  "Global stocks experienced their worst day in months as investors reacted to higher-than-expected inflation data and interest rate concerns",
		content:  "Stock markets around the world saw sharp declines today as investors responded to troubling inflation figures and anticipation of hawkish central bank policies...",
		imageURL: "https://images.pexels.com/photos/7567444/pexels-photo-7567444.jpeg",
		author:   "David Wong", category: "Business",
		age:      4 * time.Hour,
	},
	{
		title:    "Major Merger Creates New Industry Giant in Energy Sector",
		slug:     "merger-energy-sector-giant",
		summary:  "The $45 billion deal will combine two of the largest companies in renewable energy, creating a powerhouse in the green technology space",
		content:  "In a move that surprised industry analysts, two leading renewable energy corporations announced a $45 billion merger agreement today...",
		imageURL: "https://images.pexels.com/photos/3183150/pexels-photo-3183150.jpeg",
		author:   "Emma Roberts", category: "Business",
		age:      48 * time.Hour,
	},
	{
		title:    "New Virtual Reality Platform Aims to Revolutionize Remote Work",
		slug:     "vr-platform-remote-work",
		summary:  "The technology creates immersive office environments allowing teams to collaborate as if physically present, even from different continents",
		content:  "As remote work becomes increasingly permanent for many global companies, a Silicon Valley startup has unveiled a groundbreaking virtual reality platform...",
		imageURL: "https://images.pexels.com/photos/2582937/pexels-photo-2582937.jpeg",
		author:   "Michael Chen", category: "Technology",
		age:      10 * time.Hour,
	},
	{
		title:    "Robotics Breakthrough Could Transform Healthcare Delivery",
		slug:     "robotics-healthcare-delivery",
		summary:  "The new generation of medical robots can perform delicate procedures with unprecedented precision, potentially reducing recovery times and improving outcomes",
		content:  "Healthcare experts are hailing a major breakthrough in medical robotics that could fundamentally change how certain procedures are performed...",
		imageURL: "https://images.pexels.com/photos/5082579/pexels-photo-5082579.jpeg",
		author:   "Sarah Johnson", category: "Technology",
		age:      72 * time.Hour,
	},
}

// SeedDefaults creates the default categories and authors that are missing.
func (u *Manager) SeedDefaults(ctx context.Context) error {
	for _, name := range defaultCategories {
		slug := strings.ToLower(name)
		c, err := u.db.CategoryBySlug(ctx, slug)
		if err != nil {
			return fmt.Errorf("db get category %q: %w", slug, err)
		} else if c != nil {
			continue
		}

		if _, err := u.db.CreateCategory(ctx, Category{Name: name, Slug: slug}); err != nil {
			return fmt.Errorf("db create category %q: %w", name, err)
		}
	}

	authors, err := u.db.Authors(ctx)
	if err != nil {
		return fmt.Errorf("db get authors: %w", err)
	}
	known := make(map[string]struct{}, len(authors))
	for _, a := range authors {
		known[a.Name] = struct{}{}
	}

	bio := defaultAuthorBio
	for _, name := range defaultAuthors {
		if _, ok := known[name]; ok {
			continue
		}
		if _, err := u.db.CreateAuthor(ctx, Author{Name: name, Bio: &bio}); err != nil {
			return fmt.Errorf("db create author %q: %w", name, err)
		}
	}

	return nil
}

// Seed fills the store with demo articles inside a single transaction and
// returns the number of articles created. Articles whose slug already exists
// are skipped, so running it twice does not duplicate data.
func (u *Manager) Seed(ctx context.Context) (int, error) {
	var created int
	err := u.db.RunInTx(ctx, func(s Store) error {
		tx := &Manager{db: s, now: u.now}
		if err := tx.SeedDefaults(ctx); err != nil {
			return err
		}

		n, err := tx.seedArticles(ctx)
		created = n
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("seed demo data: %w", err)
	}

	return created, nil
}

func (u *Manager) seedArticles(ctx context.Context) (int, error) {
	categories, err := u.db.Categories(ctx)
	if err != nil {
		return 0, fmt.Errorf("db get categories: %w", err)
	}
	categoryIDs := make(map[string]int, len(categories))
	for _, c := range categories {
		categoryIDs[c.Name] = c.ID
	}

	authors, err := u.db.Authors(ctx)
	if err != nil {
		return 0, fmt.Errorf("db get authors: %w", err)
	}
	authorIDs := make(map[string]int, len(authors))
	for _, a := range authors {
		if _, ok := authorIDs[a.Name]; !ok {
			authorIDs[a.Name] = a.ID
		}
	}

	now := u.now()
	byCategory := make(map[int][]int)
	var created int
	for _, d := range demoArticles {
		existing, err := u.db.ArticleBySlug(ctx, d.slug)
		if err != nil {
			return 0, fmt.Errorf("db get article %q: %w", d.slug, err)
		} else if existing != nil {
			continue
		}

		a, err := u.db.CreateArticle(ctx, Article{
			Title:       d.title,
			Slug:        d.slug,
			Summary:     d.summary,
			Content:     d.content,
			ImageURL:    d.imageURL,
			AuthorID:    authorIDs[d.author],
			CategoryID:  categoryIDs[d.category],
			IsFeatured:  d.featured,
			IsBreaking:  d.breaking,
			PublishedAt: now.Add(-d.age),
		})
		if err != nil {
			return 0, fmt.Errorf("db create article %q: %w", d.slug, err)
		}
		byCategory[a.CategoryID] = append(byCategory[a.CategoryID], a.ID)
		created++
	}

	for _, ids := range byCategory {
		for _, from := range ids {
			for _, to := range ids {
				if from == to {
					continue
				}
				if _, err := u.db.CreateRelatedStory(ctx, RelatedStory{ArticleID: from, RelatedArticleID: to}); err != nil {
					return 0, fmt.Errorf("db create related story: %w", err)
				}
			}
		}
	}

	return created, nil
}
