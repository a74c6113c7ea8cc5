package pyannote

// diarizeScript is the Python driver executed via uvx. It pre-loads audio
// with torchaudio to sidestep torchcodec decode failures, runs the
// pyannote diarization pipeline, and emits millisecond CSV turns.
const diarizeScript = `#!/usr/bin/env python3
import argparse
import sys

import torch
import torchaudio
from pyannote.audio import Pipeline


def load_audio(audio_path, sample_rate=16000):
    waveform, sr = torchaudio.load(audio_path)
    if sr != sample_rate:
        waveform = torchaudio.transforms.Resample(sr, sample_rate)(waveform)
    if waveform.shape[0] > 1:
        waveform = waveform.mean(dim=0, keepdim=True)
    return {"waveform": waveform, "sample_rate": sample_rate}


def main():
    parser = argparse.ArgumentParser(description="Diarize audio file")
    parser.add_argument("--input", required=True)
    parser.add_argument("--output", required=True)
    parser.add_argument("--hf-token", required=True)
    parser.add_argument("--speaker-count", type=int)
    parser.add_argument("--min-speakers", type=int)
    parser.add_argument("--max-speakers", type=int)
    args = parser.parse_args()

    pipeline = Pipeline.from_pretrained(
        "pyannote/speaker-diarization-3.1", token=args.hf_token
    )
    device = torch.device("cuda" if torch.cuda.is_available() else "cpu")
    pipeline.to(device)

    audio = load_audio(args.input)
    kwargs = {}
    if args.speaker_count:
        kwargs["num_speakers"] = args.speaker_count
    else:
        if args.min_speakers:
            kwargs["min_speakers"] = args.min_speakers
        if args.max_speakers:
            kwargs["max_speakers"] = args.max_speakers

    result = pipeline(audio, **kwargs)
    diarization = getattr(result, "speaker_diarization", result)

    with open(args.output, "w") as out:
        for turn, _, speaker in diarization.itertracks(yield_label=True):
            start_ms = int(turn.start * 1000)
            end_ms = int(turn.end * 1000)
            out.write(f"{start_ms},{end_ms},{speaker}\n")


if __name__ == "__main__":
    sys.exit(main())
`
