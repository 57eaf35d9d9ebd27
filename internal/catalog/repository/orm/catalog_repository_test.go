package orm_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/devsolaris/natursur-bot/internal/catalog/repository/orm"
	"github.com/devsolaris/natursur-bot/internal/config"
	"github.com/devsolaris/natursur-bot/internal/database"
	"github.com/devsolaris/natursur-bot/internal/domain/models"
	"github.com/devsolaris/natursur-bot/pkg/txs"
)

func setupTestDatabase(t *testing.T) *database.PostgresDB {
	t.Helper()

	ctx := context.Background()

	const (
		dbName     = "testdb"
		dbUser     = "testuser"
		dbPassword = "testpassword"
	)

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_DB":       dbName,
				"POSTGRES_USER":     dbUser,
				"POSTGRES_PASSWORD": dbPassword,
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(10 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Error al detener el contenedor de PostgreSQL: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPassword, host, port.Port(), dbName)

	migrationsPath, err := filepath.Abs("../../../../migrations")
	require.NoError(t, err)

	m, err := migrate.New("file://"+migrationsPath, dsn)
	require.NoError(t, err)

	require.NoError(t, m.Up())

	sourceErr, dbErr := m.Close()
	require.NoError(t, sourceErr)
	require.NoError(t, dbErr)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db, err := database.NewPostgresDB(ctx, &config.Config{
		DatabaseURL:     dsn,
		DatabaseMaxConn: 5,
	}, logger)
	require.NoError(t, err)

	t.Cleanup(db.Close)

	return db
}

func TestCatalogRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("Se omite el test de integración en modo corto")
	}

	db := setupTestDatabase(t)
	repo := orm.NewCatalogRepository(db)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	txManager := txs.NewTxManager(db.Pool, logger)

	ctx := context.Background()

	products := []models.Product{
		{
			ID:          "f1",
			Nombre:      "Batido F1 Herbalife",
			Descripcion: "Batido nutricional sustitutivo de comidas.",
			Imagen:      "https://example.com/f1.jpg",
			Precio:      "38,90 €",
		},
		{
			ID:     "te_termogénico",
			Nombre: "Té Termogénico",
		},
	}

	err := txManager.WithTransaction(ctx, func(ctx context.Context) error {
		for _, product := range products {
			if err := repo.Upsert(ctx, product); err != nil {
				return err
			}
		}

		return nil
	})
	require.NoError(t, err)

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// El orden de inserción se conserva gracias a la columna posicion.
	assert.Equal(t, "f1", got[0].ID)
	assert.Equal(t, "Batido F1 Herbalife", got[0].Nombre)
	assert.Equal(t, "38,90 €", got[0].Precio)
	assert.Equal(t, "te_termogénico", got[1].ID)

	// Upsert sobre un id existente actualiza sin duplicar.
	updated := products[0]
	updated.Precio = "40,00 €"

	require.NoError(t, repo.Upsert(ctx, updated))

	got, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "40,00 €", got[0].Precio)
}
