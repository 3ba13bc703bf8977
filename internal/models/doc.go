// Package models lists the OpenAI models that can serve as the G2P
// backend. It helps users pick a value for g2p.openai_model.
package models
