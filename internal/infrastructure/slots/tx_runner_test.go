package slots_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
	"github.com/jhoicas/Facturacion-api/internal/domain/sequence"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/memory"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/slots"
)

func TestRun_ConfirmaSoloSlotsModificados(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSlotStore()
	runner := slots.NewTxRunner(store)

	err := runner.Run(ctx, func(repos repository.Set) error {
		return repos.Clients.Create(ctx, &entity.Client{ID: "CL-1", Name: "Constructora S.A.S"})
	})
	require.NoError(t, err)

	all, err := store.Slots(ctx)
	require.NoError(t, err)
	assert.Contains(t, all, repository.SlotClients)
	assert.NotContains(t, all, repository.SlotProducts, "un slot no tocado no se escribe")
}

func TestRun_ErrorNoEscribeNada(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSlotStore()
	runner := slots.NewTxRunner(store)
	boom := errors.New("boom")

	err := runner.Run(ctx, func(repos repository.Set) error {
		if err := repos.Clients.Create(ctx, &entity.Client{ID: "CL-1"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_ = runner.View(ctx, func(repos repository.Set) error {
		c, err := repos.Clients.GetByID(ctx, "CL-1")
		require.NoError(t, err)
		assert.Nil(t, c, "la escritura fallida no debe quedar persistida")
		return nil
	})
}

func TestView_SoloLectura(t *testing.T) {
	ctx := context.Background()
	runner := slots.NewTxRunner(memory.NewSlotStore())

	err := runner.View(ctx, func(repos repository.Set) error {
		return repos.Clients.Create(ctx, &entity.Client{ID: "CL-1"})
	})
	assert.Error(t, err)
}

func TestCollection_DuplicadoYNoEncontrado(t *testing.T) {
	ctx := context.Background()
	runner := slots.NewTxRunner(memory.NewSlotStore())

	err := runner.Run(ctx, func(repos repository.Set) error {
		require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "PROD-1", SKU: "CEM-001"}))
		assert.ErrorIs(t, repos.Products.Create(ctx, &entity.Product{ID: "PROD-1"}), domain.ErrDuplicate)
		assert.ErrorIs(t, repos.Products.Update(ctx, &entity.Product{ID: "PROD-9"}), domain.ErrNotFound)
		assert.ErrorIs(t, repos.Products.Delete(ctx, "PROD-9"), domain.ErrNotFound)

		p, err := repos.Products.GetBySKU(ctx, "cem-001")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "PROD-1", p.ID)
		return nil
	})
	require.NoError(t, err)
}

func TestCollection_DevuelveCopias(t *testing.T) {
	ctx := context.Background()
	runner := slots.NewTxRunner(memory.NewSlotStore())

	err := runner.Run(ctx, func(repos repository.Set) error {
		inv := &entity.Invoice{ID: "FVC-1", LineItems: []entity.LineItem{{ProductName: "Cemento"}}}
		require.NoError(t, repos.Invoices.Create(ctx, inv))
		inv.LineItems[0].ProductName = "cambiado"

		got, err := repos.Invoices.GetByID(ctx, "FVC-1")
		require.NoError(t, err)
		assert.Equal(t, "Cemento", got.LineItems[0].ProductName, "las líneas guardadas no deben compartirse")
		return nil
	})
	require.NoError(t, err)
}

func TestSequences_SeConfirmanConLaSesion(t *testing.T) {
	ctx := context.Background()
	runner := slots.NewTxRunner(memory.NewSlotStore())

	next := func() string {
		var id string
		require.NoError(t, runner.Run(ctx, func(repos repository.Set) error {
			var err error
			id, err = repos.IDs.NextID(ctx, sequence.KindCreditNote, nil)
			return err
		}))
		return id
	}
	assert.Equal(t, "NC-1", next())
	assert.Equal(t, "NC-2", next())

	_ = runner.Run(ctx, func(repos repository.Set) error {
		_, _ = repos.IDs.NextID(ctx, sequence.KindCreditNote, nil)
		return errors.New("abortar")
	})
	assert.Equal(t, "NC-3", next(), "un número consumido en una sesión abortada no se guarda")
}

func TestConnectionLogs_PrependRecorta(t *testing.T) {
	ctx := context.Background()
	runner := slots.NewTxRunner(memory.NewSlotStore())

	err := runner.Run(ctx, func(repos repository.Set) error {
		for _, id := range []string{"log-1", "log-2", "log-3"} {
			if err := repos.ConnectionLogs.Prepend(ctx, &entity.ConnectionLog{ID: id}, 2); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	_ = runner.View(ctx, func(repos repository.Set) error {
		logs, err := repos.ConnectionLogs.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, logs, 2)
		assert.Equal(t, "log-3", logs[0].ID, "el más reciente va primero")
		assert.Equal(t, "log-2", logs[1].ID)
		return nil
	})
}

func TestSettings_NilSiNoExiste(t *testing.T) {
	ctx := context.Background()
	runner := slots.NewTxRunner(memory.NewSlotStore())

	_ = runner.View(ctx, func(repos repository.Set) error {
		c, err := repos.Settings.GetCompany(ctx)
		require.NoError(t, err)
		assert.Nil(t, c)
		return nil
	})

	require.NoError(t, runner.Run(ctx, func(repos repository.Set) error {
		return repos.Settings.SaveCompany(ctx, &entity.CompanyInfo{Name: "Mi Empresa S.A.S."})
	}))

	_ = runner.View(ctx, func(repos repository.Set) error {
		c, err := repos.Settings.GetCompany(ctx)
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, "Mi Empresa S.A.S.", c.Name)
		return nil
	})
}

func TestExport_IncluyeSlots(t *testing.T) {
	ctx := context.Background()
	runner := slots.NewTxRunner(memory.NewSlotStore())
	require.NoError(t, runner.Run(ctx, func(repos repository.Set) error {
		return repos.ExpenseCategories.Create(ctx, &entity.ExpenseCategory{ID: "CAT-1", Name: "Arriendo"})
	}))

	out, err := runner.Export(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"CAT-1","name":"Arriendo"}]`, string(out[repository.SlotExpenseCategories]))
}
