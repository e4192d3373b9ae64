package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"

	"bizdir/internal/auth"
	"bizdir/internal/db"
	"bizdir/internal/domain/businesses"
	"bizdir/internal/domain/reviews"
	"bizdir/internal/domain/storage"
	"bizdir/internal/domain/users"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var firstNames = []string{
	"Maya", "Jordan", "Priya", "Carlos", "Aisha", "Ethan", "Sofia", "Liam",
	"Nina", "Marcus", "Elena", "Tyler", "Grace", "Omar", "Hannah", "Devon",
	"Lucia", "Sam", "Ingrid", "Felix",
}

var lastNames = []string{
	"Rivera", "Chen", "Patel", "Nguyen", "Johnson", "Garcia", "Kim", "Brown",
	"Okafor", "Schmidt", "Tanaka", "Lopez", "Walsh", "Haddad", "Novak",
	"Silva", "Foster", "Ali", "Berg", "Moreau",
}

type seedBusiness struct {
	name        string
	description string
	category    string
	city        string
	state       string
	priceRange  float64
}

var seedBusinesses = []seedBusiness{
	{"Blue Finch Coffee", "Small-batch roaster with pour-over bar and house pastries.", "Cafe", "Austin", "TX", 2.0},
	{"Lone Star Tacos", "Street-style tacos on handmade corn tortillas since 2009.", "Restaurant", "Austin", "TX", 1.0},
	{"Violet Crown Books", "Independent bookstore with a deep local-authors shelf.", "Retail", "Austin", "TX", 2.0},
	{"Barton Springs Bikes", "Full-service bike shop, rentals and trail maps.", "Retail", "Austin", "TX", 3.0},
	{"Hill Country Yoga", "Vinyasa and restorative classes in a converted warehouse.", "Fitness", "Austin", "TX", 2.0},
	{"Rainey Street Ramen", "Tonkotsu broth simmered eighteen hours daily.", "Restaurant", "Austin", "TX", 2.0},
	{"Cedar & Sage Spa", "Day spa offering massage, facials and sauna sessions.", "Wellness", "Austin", "TX", 4.0},
	{"The Pressed Leaf", "Tea house with over eighty loose-leaf varieties.", "Cafe", "Portland", "OR", 2.0},
	{"Burnside Vinyl", "Used records bought and sold, listening stations in back.", "Retail", "Portland", "OR", 2.0},
	{"Rose City Climbing", "Indoor bouldering gym with beginner clinics.", "Fitness", "Portland", "OR", 3.0},
	{"Alder Street Bakery", "Naturally leavened breads and seasonal galettes.", "Cafe", "Portland", "OR", 2.0},
	{"Cascadia Pho", "Family-run Vietnamese kitchen, vegan broth available.", "Restaurant", "Portland", "OR", 1.0},
	{"Forest Park Outfitters", "Hiking and camping gear with weekend rental packages.", "Retail", "Portland", "OR", 3.0},
	{"Hawthorne Barbers", "Walk-in barbershop, hot towel shaves on Fridays.", "Services", "Portland", "OR", 2.0},
	{"Lakeview Diner", "Classic diner breakfast served all day.", "Restaurant", "Chicago", "IL", 1.0},
	{"Wicker Park Flowers", "Florist specializing in locally grown arrangements.", "Retail", "Chicago", "IL", 3.0},
	{"Logan Square Pilates", "Reformer and mat classes, small group sessions.", "Fitness", "Chicago", "IL", 3.0},
	{"Deep Dish Republic", "Chicago-style pizza with a forty-minute bake worth waiting for.", "Restaurant", "Chicago", "IL", 2.0},
	{"Riverwalk Espresso", "Espresso cart turned cafe on the river path.", "Cafe", "Chicago", "IL", 2.0},
	{"The Gilded Frame", "Custom framing and a rotating gallery of local art.", "Services", "Chicago", "IL", 4.0},
	{"North Ave Nails", "Nail studio using non-toxic polish lines.", "Wellness", "Chicago", "IL", 2.0},
	{"Pilsen Print Shop", "Screen printing for bands, shops and neighborhood events.", "Services", "Chicago", "IL", 2.0},
	{"Sunset Smoothies", "Fruit bowls and smoothies with no added sugar.", "Cafe", "Denver", "CO", 2.0},
	{"Mile High Bouldering", "Climbing gym at altitude with training boards.", "Fitness", "Denver", "CO", 3.0},
	{"Platte River Paddle", "Kayak and paddleboard rentals May through September.", "Recreation", "Denver", "CO", 3.0},
	{"LoDo Tap House", "Rotating taps from Front Range breweries.", "Restaurant", "Denver", "CO", 2.0},
	{"Cherry Creek Cleaners", "Same-day dry cleaning and tailoring.", "Services", "Denver", "CO", 2.0},
	{"Alpine Audio", "Turntable repair and vintage hi-fi sales.", "Retail", "Denver", "CO", 4.0},
	{"Golden Hour Photo", "Portrait studio and film development lab.", "Services", "Denver", "CO", 3.0},
	{"Union Station Sushi", "Omakase counter and weekday lunch sets.", "Restaurant", "Denver", "CO", 4.0},
	{"Green Gate Garden", "Nursery with native plants and free soil workshops.", "Retail", "Asheville", "NC", 2.0},
	{"Blue Ridge Bagels", "Hand-rolled bagels boiled the old way.", "Cafe", "Asheville", "NC", 1.0},
	{"River Arts Pottery", "Working pottery studio with beginner wheel classes.", "Recreation", "Asheville", "NC", 3.0},
	{"Mountain Thread Co", "Fabric shop and mending workshops.", "Retail", "Asheville", "NC", 2.0},
	{"Patton Ave Pies", "Wood-fired pizza with a sourdough crust.", "Restaurant", "Asheville", "NC", 2.0},
	{"The Quiet Cup", "No-laptop cafe for coffee and conversation.", "Cafe", "Asheville", "NC", 2.0},
	{"Haywood Massage", "Deep tissue and sports massage by appointment.", "Wellness", "Asheville", "NC", 3.0},
	{"Beacon Hill Cheese", "Cut-to-order cheese counter and monthly tastings.", "Retail", "Boston", "MA", 4.0},
	{"Fenway Fitness", "Strength training gym with open-floor hours.", "Fitness", "Boston", "MA", 3.0},
	{"North End Pasta", "Fresh pasta made in the window every morning.", "Restaurant", "Boston", "MA", 3.0},
	{"Charles River Run Co", "Running shoes fitted with gait analysis.", "Retail", "Boston", "MA", 3.0},
	{"Back Bay Blooms", "Event florals and weekly bouquet subscriptions.", "Retail", "Boston", "MA", 4.0},
	{"Harborside Chowder", "Chowder bar on the wharf, cash only.", "Restaurant", "Boston", "MA", 2.0},
	{"Somerville Cycles", "Commuter bike sales and winterizing service.", "Retail", "Boston", "MA", 3.0},
	{"The Davis Stage", "Black-box theater with weekend improv.", "Recreation", "Boston", "MA", 2.0},
	{"Jamaica Plain Juice", "Cold-pressed juice and seasonal soups.", "Cafe", "Boston", "MA", 2.0},
	{"Seaport Sail School", "Beginner sailing courses on the harbor.", "Recreation", "Boston", "MA", 4.0},
	{"Dot Ave Donuts", "Small-batch donuts, sold out most days by ten.", "Cafe", "Boston", "MA", 1.0},
	{"Granite State Goods", "General store stocking New England makers.", "Retail", "Boston", "MA", 3.0},
	{"Esplanade Pilates", "Morning mat classes by the river.", "Fitness", "Boston", "MA", 2.0},
}

var comments = []string{
	"Friendly staff and the quality is consistently great. I keep coming back.",
	"A little pricey for what you get, but the experience makes up for it.",
	"Hidden gem in the neighborhood. Wish I had found this place sooner.",
	"Service was slow on a busy Saturday, though the staff stayed cheerful.",
	"Exactly what this part of town needed. Clean, welcoming and well run.",
	"Solid option but nothing extraordinary. Convenient location though.",
	"The owners clearly care about what they do. Highly recommended.",
	"Went twice in one week. The second visit was even better than the first.",
	"Decent overall, although parking nearby can be a real headache.",
	"Top notch from start to finish. Already told three friends about it.",
}

func main() {
	logger := zap.Must(zap.NewProduction()).Sugar()
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Warnw("no .env file found, relying on environment")
	}

	pool, err := db.New(os.Getenv("DB_ADDR"), 5, "15m")
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	store := storage.NewContainer(pool)
	ctx := context.Background()

	seededUsers := make([]*users.User, 0, len(firstNames))
	for i, first := range firstNames {
		user := &users.User{
			FirstName: first,
			LastName:  lastNames[i],
			Email:     fmt.Sprintf("%s.%s@example.com", strings.ToLower(first), strings.ToLower(lastNames[i])),
		}
		if err := user.Password.Set("password123"); err != nil {
			logger.Fatalw("hashing seed password", "error", err)
		}
		if err := store.Users.Create(ctx, user); err != nil {
			logger.Errorw("seeding user", "email", user.Email, "error", err)
			continue
		}
		seededUsers = append(seededUsers, user)
	}
	logger.Infow("seeded users", "count", len(seededUsers))

	seeded := 0
	for _, sb := range seedBusinesses {
		email := fmt.Sprintf("hello@%s.example.com", slug(sb.name))
		business := &businesses.Business{
			Name:        sb.name,
			Description: sb.description,
			Category:    sb.category,
			Email:       &email,
			Address:     fmt.Sprintf("%d Main St", 100+rand.Intn(900)),
			City:        sb.city,
			State:       sb.state,
			ZipCode:     fmt.Sprintf("%05d", 10000+rand.Intn(89999)),
			PriceRange:  sb.priceRange,
			IsActive:    true,
		}
		if err := store.Businesses.Create(ctx, business); err != nil {
			logger.Errorw("seeding business", "name", sb.name, "error", err)
			continue
		}
		seeded++

		// Each business gets 1-10 reviews from distinct users; the unique
		// (user_id, business_id) constraint makes the perm mandatory.
		reviewCount := 1 + rand.Intn(10)
		if reviewCount > len(seededUsers) {
			reviewCount = len(seededUsers)
		}
		for _, idx := range rand.Perm(len(seededUsers))[:reviewCount] {
			review := &reviews.Review{
				BusinessID: business.ID,
				UserID:     seededUsers[idx].ID,
				Rating:     1 + rand.Intn(5),
				Comment:    comments[rand.Intn(len(comments))],
			}
			if err := store.Reviews.Create(ctx, review); err != nil {
				logger.Errorw("seeding review", "business", sb.name, "error", err)
			}
		}
	}
	logger.Infow("seeded businesses", "count", seeded)

	if secret := os.Getenv("AUTH_TOKEN_SECRET"); secret != "" && len(seededUsers) > 0 {
		authenticator := auth.NewJWTAuthenticator(secret, os.Getenv("AUTH_TOKEN_REFRESH_SECRET"), "BizDir", "BizDir")
		access, _, err := authenticator.GenerateTokens(seededUsers[0].ID)
		if err != nil {
			logger.Errorw("generating sample token", "error", err)
		} else {
			logger.Infow("sample access token", "email", seededUsers[0].Email, "token", access)
		}
	}
}

func slug(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			out = append(out, r)
		}
	}
	return string(out)
}
