package db

type migration struct {
	version int
	name    string
	sql     string
}

const createVersionTable = `
CREATE TABLE IF NOT EXISTS schema_version (
	version    INTEGER PRIMARY KEY,
	name       TEXT NOT NULL,
	applied_at TIMESTAMP NOT NULL DEFAULT NOW()
)`

// migrations must stay ordered by version; never edit an applied entry.
var migrations = []migration{
	{
		version: 1,
		name:    "identity",
		sql: `
CREATE TABLE IF NOT EXISTS sessions (
	sid    VARCHAR PRIMARY KEY,
	sess   JSONB NOT NULL,
	expire TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_session_expire ON sessions (expire);

CREATE TABLE IF NOT EXISTS users (
	id                VARCHAR PRIMARY KEY,
	email             VARCHAR UNIQUE,
	first_name        VARCHAR,
	last_name         VARCHAR,
	profile_image_url VARCHAR,
	created_at        TIMESTAMP NOT NULL DEFAULT NOW(),
	updated_at        TIMESTAMP NOT NULL DEFAULT NOW()
);`,
	},
	{
		version: 2,
		name:    "projects_tasks",
		sql: `
CREATE TABLE IF NOT EXISTS projects (
	id          SERIAL PRIMARY KEY,
	name        VARCHAR(255) NOT NULL,
	description TEXT,
	color       VARCHAR(7) NOT NULL DEFAULT '#6366f1',
	owner_id    VARCHAR NOT NULL REFERENCES users(id),
	created_at  TIMESTAMP NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMP NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_projects_owner ON projects (owner_id);

CREATE TABLE IF NOT EXISTS tasks (
	id            SERIAL PRIMARY KEY,
	title         VARCHAR(255) NOT NULL,
	description   TEXT,
	status        VARCHAR(50) NOT NULL DEFAULT 'todo',
	priority      VARCHAR(20) NOT NULL DEFAULT 'medium',
	due_date      DATE,
	assignee_id   VARCHAR REFERENCES users(id),
	project_id    INTEGER REFERENCES projects(id) ON DELETE CASCADE,
	created_by_id VARCHAR NOT NULL REFERENCES users(id),
	position      INTEGER NOT NULL DEFAULT 0 CHECK (position >= 0),
	created_at    TIMESTAMP NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMP NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_tasks_column ON tasks (project_id, status, position);
CREATE INDEX IF NOT EXISTS idx_tasks_assignee ON tasks (assignee_id);

CREATE TABLE IF NOT EXISTS task_comments (
	id         SERIAL PRIMARY KEY,
	content    TEXT NOT NULL,
	task_id    INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
	user_id    VARCHAR NOT NULL REFERENCES users(id),
	created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS task_attachments (
	id             SERIAL PRIMARY KEY,
	file_name      VARCHAR(255) NOT NULL,
	file_size      INTEGER,
	mime_type      VARCHAR(100),
	file_path      TEXT NOT NULL,
	task_id        INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
	uploaded_by_id VARCHAR NOT NULL REFERENCES users(id),
	created_at     TIMESTAMP NOT NULL DEFAULT NOW()
);`,
	},
	{
		version: 3,
		name:    "pages_members_automations",
		sql: `
CREATE TABLE IF NOT EXISTS pages (
	id            SERIAL PRIMARY KEY,
	title         VARCHAR(255) NOT NULL,
	content       JSONB NOT NULL DEFAULT '{}',
	project_id    INTEGER REFERENCES projects(id) ON DELETE CASCADE,
	created_by_id VARCHAR NOT NULL REFERENCES users(id),
	parent_id     INTEGER REFERENCES pages(id) ON DELETE SET NULL,
	created_at    TIMESTAMP NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS project_members (
	id         SERIAL PRIMARY KEY,
	project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	user_id    VARCHAR NOT NULL REFERENCES users(id),
	role       VARCHAR(50) NOT NULL DEFAULT 'member',
	joined_at  TIMESTAMP NOT NULL DEFAULT NOW(),
	UNIQUE (project_id, user_id)
);

CREATE TABLE IF NOT EXISTS automations (
	id            SERIAL PRIMARY KEY,
	name          VARCHAR(255) NOT NULL,
	trigger       JSONB NOT NULL,
	actions       JSONB NOT NULL,
	is_active     BOOLEAN NOT NULL DEFAULT TRUE,
	project_id    INTEGER REFERENCES projects(id) ON DELETE CASCADE,
	created_by_id VARCHAR NOT NULL REFERENCES users(id),
	created_at    TIMESTAMP NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMP NOT NULL DEFAULT NOW()
);`,
	},
	{
		version: 4,
		name:    "invitations_onboarding",
		sql: `
CREATE TABLE IF NOT EXISTS invitations (
	id            SERIAL PRIMARY KEY,
	email         VARCHAR NOT NULL,
	role          VARCHAR(50) NOT NULL DEFAULT 'member',
	project_id    INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	invited_by_id VARCHAR NOT NULL REFERENCES users(id),
	token         VARCHAR NOT NULL UNIQUE,
	created_at    TIMESTAMP NOT NULL DEFAULT NOW()
);

ALTER TABLE users ADD COLUMN IF NOT EXISTS onboarded_at TIMESTAMP;`,
	},
}
