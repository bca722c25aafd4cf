package wizard

import (
	"context"
	"slices"
	"time"

	"cacau/entities"
	"cacau/pkg/formato"
	plantaSvc "cacau/pkg/planta/service"
	"cacau/pkg/record"
	"cacau/pkg/validacao"
)

const PassosPlanta = 4

// PlantaFlow builds plants over four steps: identificação, plantio,
// status and produtividade. The state survives submission so the last
// plant can serve as a template for the next one.
func PlantaFlow(svc plantaSvc.PlantaService, now func() time.Time) Flow[entities.Planta] {
	if now == nil {
		now = time.Now
	}
	return Flow[entities.Planta]{
		Nome:  "planta",
		Steps: PassosPlanta,
		Empty: func() entities.Planta {
			p := record.EmptyPlanta()
			p.Status.Situacao = entities.SituacaoSaudavel
			return p
		},
		Apply: func(p *entities.Planta, fields map[string]any) {
			record.PlantaPatchFrom(fields).Apply(p)
		},
		Clone: func(p entities.Planta) entities.Planta {
			p.Identificacao.Imagens = slices.Clone(p.Identificacao.Imagens)
			return p
		},
		Validate: validacao.Planta,
		Submit: func(ctx context.Context, p entities.Planta) (uint, error) {
			existente, err := svc.GetByCodigo(ctx, p.Identificacao.CodigoIndividual)
			if err != nil {
				return 0, err
			}
			if existente != nil {
				return 0, validacao.Err([]string{"Código individual já cadastrado"})
			}
			t := now()
			if p.DetalhesPlantio.IdadeArvore == "" {
				p.DetalhesPlantio.IdadeArvore = formato.IdadeArvore(p.DetalhesPlantio.DataPlantio, t)
			}
			if p.Produtividade.QRCode == nil {
				qr := formato.GerarCodigoQR(p.Identificacao.Especie, p.DetalhesPlantio.Localizacao, t)
				p.Produtividade.QRCode = &qr
			}
			return svc.Create(ctx, p)
		},
	}
}
