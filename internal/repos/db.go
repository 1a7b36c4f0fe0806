package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed demo accounts and catalog if the DB is empty (idempotent).
	if err := seedUsers(db); err != nil {
		return nil, err
	}
	if err := seedCatalog(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('owner','sitter','seller','admin')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Pets
CREATE TABLE IF NOT EXISTS pets(
  id TEXT PRIMARY KEY,
  owner_id TEXT NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
  name TEXT NOT NULL,
  species TEXT NOT NULL CHECK (species IN ('Dog','Cat','Bird','Other')),
  breed TEXT DEFAULT '',
  age INTEGER NOT NULL DEFAULT 0,
  medical_history TEXT DEFAULT '',
  image TEXT DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(owner_id, name)
);
CREATE INDEX IF NOT EXISTS idx_pets_owner ON pets(owner_id);

-- Sitters (sitter.id == the sitter's user id)
CREATE TABLE IF NOT EXISTS sitters(
  id TEXT PRIMARY KEY REFERENCES users(id) ON DELETE RESTRICT,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  phone TEXT DEFAULT 'Not Provided',
  service_types_json TEXT DEFAULT '[]',
  verification_status TEXT NOT NULL DEFAULT 'pending'
    CHECK (verification_status IN ('pending','approved','rejected')),
  profile_image TEXT DEFAULT 'default-avatar.png',
  id_document TEXT DEFAULT '',
  selfie_with_id TEXT DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS availabilities(
  id TEXT PRIMARY KEY,
  sitter_id TEXT NOT NULL REFERENCES sitters(id) ON DELETE RESTRICT,
  date TEXT NOT NULL,        -- 2006-01-02
  start_time TEXT NOT NULL,  -- 15:04
  end_time TEXT NOT NULL,
  notes TEXT DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_avail_sitter ON availabilities(sitter_id);

CREATE TABLE IF NOT EXISTS bookings(
  id TEXT PRIMARY KEY,
  pet_id TEXT NOT NULL REFERENCES pets(id) ON DELETE RESTRICT,
  sitter_id TEXT NOT NULL REFERENCES sitters(id) ON DELETE RESTRICT,
  availability_id TEXT DEFAULT '',
  start_at TEXT NOT NULL,    -- 2006-01-02 15:04 so string order is time order
  end_at TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending'
    CHECK (status IN ('pending','approved','rejected','completed')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_bookings_sitter ON bookings(sitter_id, start_at);
CREATE INDEX IF NOT EXISTS idx_bookings_pet ON bookings(pet_id);

-- Pricing rules
CREATE TABLE IF NOT EXISTS pricing_rules(
  id TEXT PRIMARY KEY,
  sitter_id TEXT NOT NULL REFERENCES sitters(id) ON DELETE RESTRICT,
  service_name TEXT NOT NULL,
  pet_size TEXT NOT NULL,
  duration INTEGER NOT NULL,
  special_needs TEXT NOT NULL DEFAULT 'No',
  price NUMERIC NOT NULL CHECK (price >= 0)
);
CREATE INDEX IF NOT EXISTS idx_pricing_sitter ON pricing_rules(sitter_id);

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  seller_id TEXT NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
  name TEXT NOT NULL,
  description TEXT DEFAULT '',
  price NUMERIC NOT NULL CHECK (price >= 0),
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  image TEXT DEFAULT '',
  sales_count INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_seller ON products(seller_id);

-- Orders. status=cart rows are live cart lines; one per (buyer, product).
-- No FK on buyer/product: canceled orders outlive deleted accounts/catalog.
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  buyer_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  total_price NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'cart'
    CHECK (status IN ('cart','pending','ordered','shipped','delivered','canceled')),
  ordered_at TEXT DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_cart_line
  ON orders(buyer_id, product_id) WHERE status = 'cart';
CREATE INDEX IF NOT EXISTS idx_orders_buyer ON orders(buyer_id);
CREATE INDEX IF NOT EXISTS idx_orders_product ON orders(product_id);

-- Campaigns
CREATE TABLE IF NOT EXISTS campaigns(
  id TEXT PRIMARY KEY,
  seller_id TEXT NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
  name TEXT NOT NULL,
  discount NUMERIC NOT NULL DEFAULT 0,
  description TEXT DEFAULT '',
  start_date TEXT NOT NULL,
  end_date TEXT NOT NULL,
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_campaigns_seller ON campaigns(seller_id);

-- Reviews: one row per (rater, target)
CREATE TABLE IF NOT EXISTS sitter_reviews(
  id TEXT PRIMARY KEY,
  sitter_id TEXT NOT NULL REFERENCES sitters(id) ON DELETE RESTRICT,
  owner_id TEXT NOT NULL,
  owner_name TEXT NOT NULL DEFAULT '',
  rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
  review_text TEXT DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(sitter_id, owner_id)
);

CREATE TABLE IF NOT EXISTS product_reviews(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  user_id TEXT NOT NULL,
  rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
  review_text TEXT DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(product_id, user_id)
);

-- Community: lost pets & sightings
CREATE TABLE IF NOT EXISTS lost_pets(
  id TEXT PRIMARY KEY,
  owner_id TEXT NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
  name TEXT NOT NULL,
  type TEXT DEFAULT '',
  breed TEXT DEFAULT '',
  color TEXT DEFAULT '',
  last_seen TEXT DEFAULT '',
  description TEXT DEFAULT '',
  status TEXT NOT NULL DEFAULT 'Lost' CHECK (status IN ('Lost','Found')),
  reward NUMERIC NOT NULL DEFAULT 0,
  image TEXT DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_lost_pets_owner ON lost_pets(owner_id);

CREATE TABLE IF NOT EXISTS sightings(
  id TEXT PRIMARY KEY,
  lost_pet_id TEXT NOT NULL REFERENCES lost_pets(id) ON DELETE RESTRICT,
  owner_id TEXT NOT NULL,
  helper_name TEXT NOT NULL,
  helper_phone TEXT NOT NULL,
  confidence INTEGER NOT NULL,
  details TEXT NOT NULL,
  location TEXT DEFAULT '',
  status TEXT NOT NULL DEFAULT 'Pending',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_sightings_pet ON sightings(lost_pet_id);

-- Playdates
CREATE TABLE IF NOT EXISTS playdates(
  id TEXT PRIMARY KEY,
  owner_id TEXT NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
  pet_id TEXT NOT NULL REFERENCES pets(id) ON DELETE RESTRICT,
  invitee_owner_id TEXT NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
  invitee_pet_id TEXT NOT NULL REFERENCES pets(id) ON DELETE RESTRICT,
  date TEXT NOT NULL,
  time TEXT NOT NULL,
  location TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'Pending' CHECK (status IN ('Pending','Accepted','Declined')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_playdates_owner ON playdates(owner_id);
CREATE INDEX IF NOT EXISTS idx_playdates_invitee ON playdates(invitee_owner_id);
`
	_, err := db.Exec(schema)
	return err
}

// seedUsers ensures one account per role plus a demo sitter row (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Name, Email, Role, Hash string
	}
	mk := func(id, name, email, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Name: name, Email: email, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-olivia", "Olivia", "olivia@pawhaven.test", "owner", "Passw0rd!"),
		mk("u-sam", "Sam", "sam@pawhaven.test", "sitter", "Passw0rd!"),
		mk("u-serena", "Serena", "serena@pawhaven.test", "seller", "Passw0rd!"),
		mk("u-admin", "Admin", "admin@pawhaven.test", "admin", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,name,email,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Name, x.Email, x.Hash, x.Role); err != nil {
			return err
		}
	}

	// Sitter profile for the seeded sitter account, pre-approved so the
	// browse page has something to show.
	if _, err := tx.Exec(`
		INSERT INTO sitters(id,name,email,verification_status,service_types_json)
		SELECT 'u-sam','Sam','sam@pawhaven.test','approved','["Dog Walking","Pet Sitting"]'
		WHERE NOT EXISTS (SELECT 1 FROM sitters WHERE id='u-sam')
	`); err != nil {
		return err
	}

	return tx.Commit()
}

// seedCatalog inserts demo pets and products if none exist yet.
func seedCatalog(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo pets/products")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO pets(id,owner_id,name,species,breed,age) VALUES
	  ('pet-rex','u-olivia','Rex','Dog','Labrador',3),
	  ('pet-misha','u-olivia','Misha','Cat','Siamese',2)`)

	tx.MustExec(`INSERT INTO products(id,seller_id,name,description,price,stock) VALUES
	  ('prod-leash','u-serena','Rope Leash','Braided 1.5m walking leash',14.50,25),
	  ('prod-kibble','u-serena','Salmon Kibble 2kg','Grain-free dry food',32.00,10),
	  ('prod-tower','u-serena','Cat Tower','Three-level sisal tower',89.90,4)`)

	return tx.Commit()
}
