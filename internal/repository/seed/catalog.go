// Package seed holds the built-in park and trail catalog used when no
// database is configured and to populate empty stores.
package seed

import "github.com/trilhasbrasil/backend/internal/domain"

const (
	BrasiliaParkID  = "7a103b3b-d434-4da6-88df-687df60043da"
	PireneusParkID  = "33d94de9-008d-4337-a300-62637c8ba278"
	VeadeirosParkID = "f99ad11e-4242-4024-86b6-1ba840b55c25"
	IguacuParkID    = "b2c3d4e5-f6a7-8901-2345-67890abcdef1"
	CanastraParkID  = "a1b2c3d4-e5f6-7890-1234-567890abcdef"

	TororoTrailID = "6b97fd34-dd97-45d6-a825-84f2a9001771"
)

// Parks returns a fresh copy of the park catalog
func Parks() []domain.Park {
	return []domain.Park{
		{
			ID: "1", UUID: BrasiliaParkID,
			Name: "Parque Nacional de Brasília", State: "Distrito Federal", Region: "Centro-Oeste",
			Location: "Brasília, DF", Area: "42.389 hectares", TrailCount: 3, Visitors: "150k/ano", Rating: 4.7,
			ImageURL:    "/images/parques/parquenacional.jpg",
			Description: "Conhecido como Água Mineral, o parque protege ecossistemas do Cerrado e abriga as famosas piscinas de água corrente.",
			Featured:    true,
		},
		{
			ID: "2", UUID: VeadeirosParkID,
			Name: "Parque Nacional da Chapada dos Veadeiros", State: "Goiás", Region: "Centro-Oeste",
			Location: "Alto Paraíso de Goiás, GO", Area: "240.611 hectares", TrailCount: 1, Visitors: "80k/ano", Rating: 4.9,
			ImageURL:    "/images/parques/chapada.jpg",
			Description: "Patrimônio Mundial Natural da UNESCO, famoso por seus cânions, cachoeiras e formações de quartzo.",
			Featured:    true,
		},
		{
			ID: "3", UUID: CanastraParkID,
			Name: "Parque Nacional da Serra da Canastra", State: "Minas Gerais", Region: "Sudeste",
			Location: "São Roque de Minas, MG", Area: "71.525 hectares", Visitors: "180k/ano", Rating: 4.8,
			ImageURL:    "/images/parques/canastra.jpg",
			Description: "Nascente do Rio São Francisco e paisagens únicas do cerrado, com cachoeiras como a Casca d'Anta.",
		},
		{
			ID: "4", UUID: IguacuParkID,
			Name: "Parque Nacional do Iguaçu", State: "Paraná", Region: "Sul",
			Location: "Foz do Iguaçu, PR", Area: "185.262 hectares", Visitors: "1.8M/ano", Rating: 4.9,
			ImageURL:    "/images/parques/iguacu.jpg",
			Description: "Lar das famosas Cataratas do Iguaçu, uma das Sete Maravilhas Naturais do Mundo.",
			Featured:    true,
		},
		{
			ID: "5", UUID: PireneusParkID,
			Name: "Parque Estadual dos Pireneus", State: "Goiás", Region: "Centro-Oeste",
			Location: "Pirenópolis, GO", Area: "2.833 hectares", TrailCount: 1, Visitors: "50k/ano", Rating: 4.8,
			ImageURL:    "/images/parques/pireneus.jpg",
			Description: "Protege o ponto mais alto da região, com mirantes, formações rochosas e cerrado rupestre.",
		},
	}
}

// Trails returns a fresh copy of the trail catalog
func Trails() []domain.Trail {
	return []domain.Trail{
		{
			ID: TororoTrailID, ParkID: BrasiliaParkID,
			Name: "Trilha da Cachoeira do Tororó", Location: "Santa Maria, Distrito Federal",
			Description: "Trilha de dificuldade moderada que termina em uma queda d'água perfeita para um mergulho.",
			ImageURL:    "/images/trilhas/tororo.jpg",
			Difficulty:  domain.DifficultyModerate, DistanceKm: 5.2, Duration: "2-3 horas", ElevationM: 180, Rating: 4.7,
			Coordinates: &domain.Coordinates{Lat: -15.9647, Lng: -47.9977},
			Path: []domain.Coordinates{
				{Lat: -15.9647, Lng: -47.9977}, {Lat: -15.9657, Lng: -47.9967}, {Lat: -15.9667, Lng: -47.9957},
				{Lat: -15.9677, Lng: -47.9947}, {Lat: -15.9687, Lng: -47.9937}, {Lat: -15.9697, Lng: -47.9927},
			},
			Waypoints: []domain.Waypoint{{Name: "Cachoeira do Tororó", Lat: -15.9697, Lng: -47.9927}},
		},
		{
			ID: "ba2b1c8c-4045-4a42-8475-89b135960ae6", ParkID: BrasiliaParkID,
			Name: "Trilha da Chapada Imperial", Location: "Brazlândia, Distrito Federal",
			Description: "Diversas trilhas em meio ao cerrado preservado, com cachoeiras e mirantes.",
			ImageURL:    "/images/trilhas/imperial.jpg",
			Difficulty:  domain.DifficultyEasy, DistanceKm: 3.8, Duration: "1-2 horas", ElevationM: 120, Rating: 4.8,
			Coordinates: &domain.Coordinates{Lat: -15.7801, Lng: -48.1223},
		},
		{
			ID: "5f23719b-13d0-401f-809e-9b218800b5dd", ParkID: BrasiliaParkID,
			Name: "Trilha do Poço Azul", Location: "Brazlândia, Distrito Federal",
			Description: "Trilha curta de terreno irregular até um poço de águas cristalinas.",
			ImageURL:    "/images/trilhas/pocoazul.jpg",
			Difficulty:  domain.DifficultyModerate, DistanceKm: 2.5, Duration: "1 hora", ElevationM: 90, Rating: 4.6,
			Coordinates: &domain.Coordinates{Lat: -15.7721, Lng: -48.1982},
		},
		{
			ID: "0548f4dd-e29c-4121-8415-b1c114befab1", ParkID: PireneusParkID,
			Name: "Trilha da Serra dos Pireneus (Pico)", Location: "Pirenópolis, Goiás",
			Description: "Vistas panorâmicas do ponto culminante da região e um nascer do sol inesquecível.",
			ImageURL:    "/images/trilhas/pirineus.jpg",
			Difficulty:  domain.DifficultyHard, DistanceKm: 8.5, Duration: "4-5 horas", ElevationM: 520, Rating: 4.9,
			Coordinates: &domain.Coordinates{Lat: -15.7899, Lng: -48.8292},
		},
		{
			ID: "e8ecf5cc-4d24-409d-972b-96facb8ad024", ParkID: VeadeirosParkID,
			Name: "Trilha do Vale da Lua", Location: "Alto Paraíso de Goiás, Chapada dos Veadeiros, Goiás",
			Description: "Formações rochosas esculpidas pela água ao longo de milhões de anos.",
			ImageURL:    "/images/trilhas/valedalua.jpg",
			Difficulty:  domain.DifficultyModerate, DistanceKm: 1.8, Duration: "1 hora", ElevationM: 50, Rating: 4.8,
			Coordinates: &domain.Coordinates{Lat: -14.180, Lng: -47.796},
		},
	}
}
