package entity

import (
	"fmt"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/levels"
)

// levelPrefabs maps level entity types to the prefab they are built from.
var levelPrefabs = map[string]string{
	"player": "player.yaml",
	"camera": "camera.yaml",
	"spike":  "spike.yaml",
	"heart":  "heart.yaml",
}

// LoadLevelToWorld fills the world with the level: a bounds entity, one entity
// per drawn or collidable cell and the level's placed entities.
func LoadLevelToWorld(world *ecs.World, lvl *levels.Level) error {
	if world == nil || lvl == nil {
		return fmt.Errorf("level: world and level are required")
	}
	if err := lvl.Validate(); err != nil {
		return err
	}

	tileSize := float64(lvl.TileSize)
	boundsEntity := world.CreateEntity()
	if err := ecs.Add(world, boundsEntity, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:    float64(lvl.Width) * tileSize,
		Height:   float64(lvl.Height) * tileSize,
		TileSize: tileSize,
	}); err != nil {
		return err
	}

	var tileset *ebiten.Image
	if lvl.Tileset != "" && len(lvl.Tiles) > 0 {
		img, err := loadImage(lvl.Tileset)
		if err != nil {
			return fmt.Errorf("level: load tileset %q: %w", lvl.Tileset, err)
		}
		tileset = img
	}
	atlas := &component.TextureAtlas{Sheet: tileset, FrameW: lvl.TileSize, FrameH: lvl.TileSize}
	if tileset != nil {
		atlas.Columns = tileset.Bounds().Dx() / lvl.TileSize
	}

	for y := 0; y < lvl.Height; y++ {
		for x := 0; x < lvl.Width; x++ {
			tile := lvl.Tile(x, y)
			solid := lvl.Collidable(x, y)
			if tile < 0 && !solid {
				continue
			}

			e := world.CreateEntity()
			if err := ecs.Add(world, e, component.TransformComponent.Kind(), &component.Transform{
				X:      float64(x) * tileSize,
				Y:      float64(y) * tileSize,
				ScaleX: 1,
				ScaleY: 1,
			}); err != nil {
				return err
			}

			if tile >= 0 && tileset != nil {
				if err := ecs.Add(world, e, component.SpriteComponent.Kind(), &component.Sprite{
					Image:     tileset,
					Source:    atlas.CellRect(tile),
					UseSource: true,
				}); err != nil {
					return err
				}
				if err := ecs.Add(world, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: component.LayerTiles}); err != nil {
					return err
				}
			}

			if solid {
				if err := ecs.Add(world, e, component.CollidableComponent.Kind(), &component.Collidable{}); err != nil {
					return err
				}
			}
		}
	}

	for _, ent := range lvl.Entities {
		prefab, ok := levelPrefabs[strings.ToLower(ent.Type)]
		if !ok {
			log.Printf("level: unknown entity type %q at (%v, %v)", ent.Type, ent.X, ent.Y)
			continue
		}
		e, err := BuildEntity(world, prefab)
		if err != nil {
			return fmt.Errorf("level: %s: %w", ent.Type, err)
		}
		if err := SetEntityTransform(world, e, ent.X, ent.Y, 0); err != nil {
			return fmt.Errorf("level: %s: override transform: %w", ent.Type, err)
		}
	}

	return nil
}
